package models

import "strings"

// Language is a target language for generated comments.
type Language string

const (
	Turkish  Language = "Turkish"
	English  Language = "English"
	Russian  Language = "Russian"
	Chinese  Language = "Chinese"
	Japanese Language = "Japanese"
	German   Language = "German"
	French   Language = "French"
	Spanish  Language = "Spanish"
)

const DefaultLanguage = Turkish

// Languages lists the supported target languages in display order.
var Languages = []Language{Turkish, English, Russian, Chinese, Japanese, German, French, Spanish}

func (l Language) IsValid() bool {
	switch l {
	case Turkish, English, Russian, Chinese, Japanese, German, French, Spanish:
		return true
	}
	return false
}

var languageCodes = map[Language]string{
	Turkish:  "tr",
	English:  "en",
	Russian:  "ru",
	Chinese:  "zh",
	Japanese: "ja",
	German:   "de",
	French:   "fr",
	Spanish:  "es",
}

// Code returns the ISO 639-1 code of the language.
func (l Language) Code() string {
	return languageCodes[l]
}

// ParseLanguage accepts a language name in any case.
func ParseLanguage(s string) (Language, bool) {
	s = strings.TrimSpace(s)
	for _, l := range Languages {
		if strings.EqualFold(string(l), s) {
			return l, true
		}
	}
	return "", false
}

// Style selects the tone instructions used when prompting the model.
type Style string

const (
	StyleDefault      Style = "default"
	StyleFriendly     Style = "friendly"
	StyleProfessional Style = "professional"
	StyleFunny        Style = "funny"
	StyleCritical     Style = "critical"
	StyleSupportive   Style = "supportive"
	StyleQuestion     Style = "question"
)

var Styles = []Style{StyleDefault, StyleFriendly, StyleProfessional, StyleFunny, StyleCritical, StyleSupportive, StyleQuestion}

func (s Style) IsValid() bool {
	switch s {
	case StyleDefault, StyleFriendly, StyleProfessional, StyleFunny, StyleCritical, StyleSupportive, StyleQuestion:
		return true
	}
	return false
}

func ParseStyle(s string) (Style, bool) {
	st := Style(strings.ToLower(strings.TrimSpace(s)))
	return st, st.IsValid()
}
