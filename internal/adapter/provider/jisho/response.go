package jisho

// apiResponse is the envelope returned by the Jisho word search API.
type apiResponse struct {
	Meta apiMeta    `json:"meta"`
	Data []apiEntry `json:"data"`
}

type apiMeta struct {
	Status int `json:"status"`
}

// apiEntry is one dictionary entry. An entry may list several written forms.
type apiEntry struct {
	Slug     string        `json:"slug"`
	IsCommon bool          `json:"is_common"`
	Japanese []apiJapanese `json:"japanese"`
	Senses   []apiSense    `json:"senses"`
}

// apiJapanese is one written form. Kana-only entries have no Word.
type apiJapanese struct {
	Word    string `json:"word"`
	Reading string `json:"reading"`
}

// apiSense groups English definitions sharing parts of speech.
type apiSense struct {
	EnglishDefinitions []string `json:"english_definitions"`
	PartsOfSpeech      []string `json:"parts_of_speech"`
}
