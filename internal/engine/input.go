package engine

import "strings"

// input is the logical meaning of an event, whatever channel it came through
type input int

const (
	inputText input = iota
	inputStart
	inputCurrent
	inputTomorrow
	inputForecast
	inputSettings
	inputLocation
	inputLanguage
	inputUnits
	inputEnglish
	inputRussian
	inputMetric
	inputImperial
	inputBack
)

var inputNames = [...]string{
	inputText:     "text",
	inputStart:    "start",
	inputCurrent:  "current",
	inputTomorrow: "tomorrow",
	inputForecast: "forecast",
	inputSettings: "settings",
	inputLocation: "location",
	inputLanguage: "language",
	inputUnits:    "units",
	inputEnglish:  "english",
	inputRussian:  "russian",
	inputMetric:   "metric",
	inputImperial: "imperial",
	inputBack:     "back",
}

func (i input) String() string {
	if int(i) < len(inputNames) {
		return inputNames[i]
	}
	return "unknown"
}

var commands = map[string]input{
	"/start":    inputStart,
	"/current":  inputCurrent,
	"/tomorrow": inputTomorrow,
	"/forecast": inputForecast,
	"/settings": inputSettings,
}

var buttonInputs = map[Button]input{
	ButtonCurrent:  inputCurrent,
	ButtonTomorrow: inputTomorrow,
	ButtonForecast: inputForecast,
	ButtonSettings: inputSettings,
	ButtonLocation: inputLocation,
	ButtonLanguage: inputLanguage,
	ButtonUnits:    inputUnits,
	ButtonEnglish:  inputEnglish,
	ButtonRussian:  inputRussian,
	ButtonMetric:   inputMetric,
	ButtonImperial: inputImperial,
	ButtonBack:     inputBack,
}

// labels and callbacks are built from buttonInputs so both spellings of a
// button always resolve to the same input
var (
	labels    = make(map[string]input, len(buttonInputs))
	callbacks = make(map[string]input, len(buttonInputs))
)

func init() {
	for b, in := range buttonInputs {
		labels[b.Label] = in
		callbacks[b.Unique] = in
	}
}

// resolve maps an event to its logical input; anything unknown is inputText
func resolve(ev Event) input {
	if ev.Kind == KindCallback {
		return callbacks[strings.TrimSpace(ev.Payload)]
	}

	text := normalizeText(ev.Payload)
	if in, ok := commands[commandName(text)]; ok {
		return in
	}
	if in, ok := labels[text]; ok {
		return in
	}
	return inputText
}

// commandName strips arguments and the @botname suffix from a slash command
func commandName(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	if i := strings.IndexAny(text, " \t\n"); i >= 0 {
		text = text[:i]
	}
	if i := strings.Index(text, "@"); i >= 0 {
		text = text[:i]
	}
	return strings.ToLower(text)
}
