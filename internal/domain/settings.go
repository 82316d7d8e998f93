package domain

import "fmt"

// Units is the measurement system used for forecasts
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// ParseUnits parses the wire encoding of Units
func ParseUnits(s string) (Units, error) {
	switch Units(s) {
	case UnitsMetric, UnitsImperial:
		return Units(s), nil
	}
	return "", fmt.Errorf("%w: units %q", ErrUnknownCode, s)
}

func (u Units) String() string {
	return string(u)
}

// APIParam returns the value of the provider "units" query parameter
func (u Units) APIParam() string {
	return string(u)
}

// DegreeSign returns the temperature suffix shown to users
func (u Units) DegreeSign() string {
	if u == UnitsImperial {
		return "℉"
	}
	return "℃"
}

// Sign returns the emoji shown next to the units name
func (u Units) Sign() string {
	if u == UnitsImperial {
		return "👑"
	}
	return "📏"
}

// Language is the language forecast descriptions are requested in
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageRussian Language = "russian"
)

// ParseLanguage parses the wire encoding of Language
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LanguageEnglish, LanguageRussian:
		return Language(s), nil
	}
	return "", fmt.Errorf("%w: language %q", ErrUnknownCode, s)
}

func (l Language) String() string {
	return string(l)
}

// Code returns the 2-letter code for the provider "lang" parameter
func (l Language) Code() string {
	if l == LanguageRussian {
		return "ru"
	}
	return "en"
}

// Flag returns the emoji flag shown next to the language name
func (l Language) Flag() string {
	if l == LanguageRussian {
		return "🇷🇺"
	}
	return "🇺🇸"
}

// Title returns the display name
func (l Language) Title() string {
	if l == LanguageRussian {
		return "Russian"
	}
	return "English"
}
