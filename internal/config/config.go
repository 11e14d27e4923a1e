package config

import "time"

// Config is the root application configuration.
type Config struct {
	Log        LogConfig        `yaml:"log"`
	Tokenizer  TokenizerConfig  `yaml:"tokenizer"`
	Filter     FilterConfig     `yaml:"filter"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Cache      CacheConfig      `yaml:"cache"`
	Output     OutputConfig     `yaml:"output"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// TokenizerConfig selects the kagome system dictionary and segmentation mode.
type TokenizerConfig struct {
	Dict string `yaml:"dict" env:"TOKENIZER_DICT" env-default:"ipa"`
	Mode string `yaml:"mode" env:"TOKENIZER_MODE" env-default:"normal"`
}

// FilterConfig selects which tokens become vocabulary.
type FilterConfig struct {
	Mode string `yaml:"mode" env:"FILTER_MODE" env-default:"kanji"`
}

// DictionaryConfig holds dictionary provider settings.
type DictionaryConfig struct {
	Provider          string        `yaml:"provider"            env:"DICT_PROVIDER"            env-default:"jisho"`
	URLTemplate       string        `yaml:"url_template"        env:"DICT_URL_TEMPLATE"        env-default:"https://jisho.org/api/v1/search/words?keyword={word}"`
	GlossaryPath      string        `yaml:"glossary_path"       env:"DICT_GLOSSARY_PATH"`
	Timeout           time.Duration `yaml:"timeout"             env:"DICT_TIMEOUT"             env-default:"10s"`
	MaxRetries        int           `yaml:"max_retries"         env:"DICT_MAX_RETRIES"         env-default:"3"`
	InitialBackoff    time.Duration `yaml:"initial_backoff"     env:"DICT_INITIAL_BACKOFF"     env-default:"500ms"`
	MaxBackoff        time.Duration `yaml:"max_backoff"         env:"DICT_MAX_BACKOFF"         env-default:"5s"`
	Concurrency       int           `yaml:"concurrency"         env:"DICT_CONCURRENCY"         env-default:"4"`
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"DICT_REQUESTS_PER_MINUTE" env-default:"0"`
	UserAgent         string        `yaml:"user_agent"          env:"DICT_USER_AGENT"          env-default:"jpgloss"`
}

// CacheConfig holds lookup cache settings.
type CacheConfig struct {
	Driver     string         `yaml:"driver"      env:"CACHE_DRIVER"      env-default:"none"`
	SQLitePath string         `yaml:"sqlite_path" env:"CACHE_SQLITE_PATH" env-default:"jpgloss-cache.db"`
	TTL        time.Duration  `yaml:"ttl"         env:"CACHE_TTL"         env-default:"0s"`
	Postgres   PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL connection settings for the cache.
type PostgresConfig struct {
	DSN             string        `yaml:"dsn"                env:"CACHE_POSTGRES_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"CACHE_POSTGRES_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"CACHE_POSTGRES_MIN_CONNS"          env-default:"0"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"CACHE_POSTGRES_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"CACHE_POSTGRES_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// OutputConfig holds rendering settings.
type OutputConfig struct {
	Format        string `yaml:"format"         env:"OUTPUT_FORMAT"         env-default:"text"`
	Unknown       string `yaml:"unknown"        env:"OUTPUT_UNKNOWN"        env-default:"plain"`
	UnknownMarker string `yaml:"unknown_marker" env:"OUTPUT_UNKNOWN_MARKER" env-default:"?"`
	Title         string `yaml:"title"          env:"OUTPUT_TITLE"          env-default:"jpgloss"`
	Stylesheet    string `yaml:"stylesheet"     env:"OUTPUT_STYLESHEET"`
}

// Provider names accepted by dictionary.provider.
const (
	ProviderJisho    = "jisho"
	ProviderGlossary = "glossary"
	ProviderChain    = "chain"
)

// Cache drivers accepted by cache.driver.
const (
	CacheNone     = "none"
	CacheSQLite   = "sqlite"
	CachePostgres = "postgres"
)

// UsesJisho reports whether the configured provider reaches the HTTP API.
func (c DictionaryConfig) UsesJisho() bool {
	return c.Provider == ProviderJisho || c.Provider == ProviderChain
}

// UsesGlossary reports whether the configured provider reads the glossary file.
func (c DictionaryConfig) UsesGlossary() bool {
	return c.Provider == ProviderGlossary || c.Provider == ProviderChain
}
