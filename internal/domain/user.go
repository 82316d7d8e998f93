package domain

import "fmt"

// DialogueState is the node of the per-user conversation state machine
type DialogueState int

// Integer values are part of the persisted format, do not reorder
const (
	StateMain DialogueState = iota
	StateWelcome
	StateSettings
	StateSettingLocation
	StateSettingLanguage
	StateSettingUnits
)

var stateNames = map[DialogueState]string{
	StateMain:            "main",
	StateWelcome:         "welcome",
	StateSettings:        "settings",
	StateSettingLocation: "setting_location",
	StateSettingLanguage: "setting_language",
	StateSettingUnits:    "setting_units",
}

// String returns the state name used in logs
func (s DialogueState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ParseDialogueState converts a persisted integer back to a state
func ParseDialogueState(v int) (DialogueState, error) {
	s := DialogueState(v)
	if _, ok := stateNames[s]; !ok {
		return 0, fmt.Errorf("%w: dialogue state %d", ErrUnknownCode, v)
	}
	return s, nil
}

// Settings holds user preferences
type Settings struct {
	Location string
	Language Language
	Units    Units
}

// UserRecord is everything persisted for one user
type UserRecord struct {
	State    DialogueState
	Settings Settings
}

// DefaultUserRecord returns the record for a user seen for the first time
func DefaultUserRecord() UserRecord {
	return UserRecord{
		State: StateWelcome,
		Settings: Settings{
			Location: "",
			Language: LanguageEnglish,
			Units:    UnitsMetric,
		},
	}
}
