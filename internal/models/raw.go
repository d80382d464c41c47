package models

// RawWordEntry is one line of a Wiktionary JSONL export (kaikki.org
// format), parsed during import before insertion into the store.
type RawWordEntry struct {
	Word            string           `json:"word"`
	POS             string           `json:"pos"`
	Lang            string           `json:"lang"`
	LangCode        string           `json:"lang_code"`
	EtymologyNumber int              `json:"etymology_number"`
	EtymologyText   string           `json:"etymology_text"`
	Senses          []RawSense       `json:"senses"`
	Sounds          []RawSound       `json:"sounds"`
	Translations    []RawTranslation `json:"translations"`
}

// RawSense is a single sense from the export. Glosses is preferred
// over RawGlosses when both are present.
type RawSense struct {
	Glosses    []string     `json:"glosses"`
	RawGlosses []string     `json:"raw_glosses"`
	Examples   []RawExample `json:"examples"`
	Tags       []string     `json:"tags"`
}

// RawExample is an example sentence attached to a sense.
type RawExample struct {
	Text string `json:"text"`
}

// RawSound is pronunciation data from the export.
type RawSound struct {
	IPA    string   `json:"ipa"`
	Audio  string   `json:"audio"`
	OggURL string   `json:"ogg_url"`
	MP3URL string   `json:"mp3_url"`
	Tags   []string `json:"tags"`
}

// RawTranslation is a translation record from the export.
type RawTranslation struct {
	Lang string `json:"lang"`
	Code string `json:"code"`
	Word string `json:"word"`
}

// AudioURL returns the preferred audio URL for a sound: ogg, then
// mp3, then the generic audio field. Empty when none is present.
func (s *RawSound) AudioURL() string {
	if s.OggURL != "" {
		return s.OggURL
	}
	if s.MP3URL != "" {
		return s.MP3URL
	}
	return s.Audio
}
