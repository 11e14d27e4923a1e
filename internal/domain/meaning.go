package domain

// MeaningEntry is the reading and candidate English glosses resolved for a
// vocabulary word. Meanings keep the dictionary's order; only the first is
// rendered inline.
type MeaningEntry struct {
	Word          string
	Reading       string
	Meanings      []string
	PartsOfSpeech []string
	Common        bool
}

// FirstMeaning returns the first candidate meaning, or "" if there is none.
func (e MeaningEntry) FirstMeaning() string {
	if len(e.Meanings) == 0 {
		return ""
	}
	return e.Meanings[0]
}

// Lookup is the outcome of resolving one vocabulary word.
// Entry is only meaningful when Status is StatusFound; Err only when StatusFailed.
type Lookup struct {
	Word   string
	Status LookupStatus
	Entry  MeaningEntry
	Err    error
}

// Found builds a successful Lookup.
func Found(word string, entry MeaningEntry) Lookup {
	return Lookup{Word: word, Status: StatusFound, Entry: entry}
}

// NotFound builds a Lookup for a word the dictionary has no senses for.
func NotFound(word string) Lookup {
	return Lookup{Word: word, Status: StatusNotFound}
}

// Failed builds a Lookup for a word whose resolution failed.
func Failed(word string, err error) Lookup {
	return Lookup{Word: word, Status: StatusFailed, Err: err}
}
