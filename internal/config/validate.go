package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := oneOf("log.level", strings.ToLower(c.Log.Level), "debug", "info", "warn", "warning", "error"); err != nil {
		return err
	}
	if err := oneOf("log.format", strings.ToLower(c.Log.Format), "json", "text"); err != nil {
		return err
	}
	if err := oneOf("tokenizer.dict", c.Tokenizer.Dict, "ipa", "uni"); err != nil {
		return err
	}
	if err := oneOf("tokenizer.mode", c.Tokenizer.Mode, "normal", "search", "extended"); err != nil {
		return err
	}
	if err := oneOf("filter.mode", c.Filter.Mode, "kanji", "japanese"); err != nil {
		return err
	}
	if err := c.Dictionary.validate(); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}
	if err := c.Cache.validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Output.validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

func (d *DictionaryConfig) validate() error {
	if err := oneOf("provider", d.Provider, ProviderJisho, ProviderGlossary, ProviderChain); err != nil {
		return err
	}
	if d.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be > 0 (got %d)", d.Concurrency)
	}
	if d.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0 (got %d)", d.MaxRetries)
	}
	if d.RequestsPerMinute < 0 {
		return fmt.Errorf("requests_per_minute must be >= 0 (got %d)", d.RequestsPerMinute)
	}
	if d.UsesJisho() {
		if err := validateURLTemplate(d.URLTemplate); err != nil {
			return fmt.Errorf("url_template: %w", err)
		}
		if d.Timeout <= 0 {
			return fmt.Errorf("timeout must be > 0 (got %v)", d.Timeout)
		}
		if d.InitialBackoff <= 0 {
			return fmt.Errorf("initial_backoff must be > 0 (got %v)", d.InitialBackoff)
		}
		if d.MaxBackoff < d.InitialBackoff {
			return fmt.Errorf("max_backoff must be >= initial_backoff (got %v < %v)", d.MaxBackoff, d.InitialBackoff)
		}
	}
	if d.UsesGlossary() && strings.TrimSpace(d.GlossaryPath) == "" {
		return fmt.Errorf("glossary_path is required for provider %q", d.Provider)
	}
	return nil
}

func (c *CacheConfig) validate() error {
	if err := oneOf("driver", c.Driver, CacheNone, CacheSQLite, CachePostgres); err != nil {
		return err
	}
	if c.TTL < 0 {
		return fmt.Errorf("ttl must be >= 0 (got %v)", c.TTL)
	}
	switch c.Driver {
	case CacheSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("sqlite_path is required for driver %q", c.Driver)
		}
	case CachePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn is required for driver %q", c.Driver)
		}
		if c.Postgres.MaxConns <= 0 {
			return fmt.Errorf("postgres.max_conns must be > 0 (got %d)", c.Postgres.MaxConns)
		}
		if c.Postgres.MinConns < 0 || c.Postgres.MinConns > c.Postgres.MaxConns {
			return fmt.Errorf("postgres.min_conns must be within [0, max_conns] (got %d)", c.Postgres.MinConns)
		}
	}
	return nil
}

func (o *OutputConfig) validate() error {
	if err := oneOf("format", o.Format, "text", "html", "json"); err != nil {
		return err
	}
	if err := oneOf("unknown", o.Unknown, "plain", "mark"); err != nil {
		return err
	}
	if o.Unknown == "mark" && o.UnknownMarker == "" {
		return fmt.Errorf("unknown_marker must not be empty when unknown is %q", o.Unknown)
	}
	return nil
}

func validateURLTemplate(tmpl string) error {
	if !strings.Contains(tmpl, "{word}") {
		return fmt.Errorf("must contain {word} placeholder (got %q)", tmpl)
	}
	u, err := url.Parse(strings.ReplaceAll(tmpl, "{word}", "x"))
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https (got %q)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required (got %q)", tmpl)
	}
	return nil
}

func oneOf(field, value string, allowed ...string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("%s must be one of %s (got %q)", field, strings.Join(allowed, ", "), value)
}
