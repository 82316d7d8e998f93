package engine

import (
	"fmt"
	"strings"

	"weathercat/internal/domain"
)

const (
	textWelcome          = "Hey, I'm the Weather Cat 🐱\nI can show you a weather forecast up to 4 days 🐾"
	textStartPrompt      = "🐈 To start, enter your city:"
	textGreeting         = "Hi, %s.\n" + textStartPrompt
	textLocationSet      = "👌 Done. Current city: %s"
	textNotFoundWelcome  = "⚠️ Location not found.\n\n" + textStartPrompt
	textNotFoundSettings = "⚠️ Location not found.\n\n🐈 Enter your city:"
	textChooseOne        = "Choose one:"
	textChoosePrefs      = "Choose your preferences: "
	textCurrentCity      = "📍 Current city: %s"
	textLocationPrompt   = "📍 Current location: %s.\n\n🐈 Enter your city:"
	textLanguagePrompt   = "Current: %s %s.\n\nChoose a forecast language:"
	textUnitsPrompt      = "Current: %s %s.\n\nChoose units:"
	textLocationUpdated  = "✔️ Updated. Current city: %s"
	textLanguageUpdated  = "✔️ Updated. Current language: %s %s."
	textUnitsUpdated     = "✔️ Updated. Current units: %s %s."
	textCallbackUpdated  = "Updated."
	textServerError      = "⁉️ Server error. Please try again."
)

var greetings = map[string]bool{
	"привет": true,
	"hello":  true,
	"hi":     true,
	"hey":    true,
}

// badCommandAnswers are replies to input the current state does not accept
var badCommandAnswers = []string{
	"Sorry, I didn't get what you mean.",
	"Sorry, I didn't quite get it.",
	"Eh? I don't get it.",
	"Oops. Please try again.",
	"Sorry, I don't understand.",
	"Sorry, I didn't catch that.",
	"It makes no sense to me.",
	"It's a mystery to me.",
	"It's completely beyond me.",
	"I can't get my head around it.",
	"Sorry?",
	"Sorry, what?",
	"I’m sorry, what was that?",
	"Excuse me?",
	"Pardon?",
	"What?",
	"Hmm?",
	"Come again?",
	"This is all Greek to me.",
	"I can’t make head nor tail of what you’re saying.",
	"Bad command. Please try again.",
	"Command not recognized. Please try again.",
}

func settingsSummary(s domain.Settings) string {
	return fmt.Sprintf("Current: 📍 %s | %s %s | %s %s",
		s.Location, s.Language.Flag(), s.Language.Title(), s.Units.Sign(), s.Units)
}

func renderCurrent(loc domain.LocationInfo, r domain.CurrentReport, units domain.Units) string {
	return fmt.Sprintf("<i>Current weather in %s, %s: %d%s, %s</i>",
		loc.City, loc.Country, r.Temp, units.DegreeSign(), r.Description)
}

// renderTomorrow expects at least one report
func renderTomorrow(loc domain.LocationInfo, reports []domain.TomorrowReport, units domain.Units) string {
	lines := make([]string, 0, len(reports)+1)
	lines = append(lines, fmt.Sprintf("<u>%s - %s, %s:</u>", reports[0].DateLabel(), loc.City, loc.Country))
	for _, r := range reports {
		lines = append(lines, fmt.Sprintf("<i><b>%s</b>: %d%s, %s</i>",
			r.HourLabel(), r.Temp, units.DegreeSign(), r.Description))
	}
	return strings.Join(lines, "\n")
}

func renderForecast(loc domain.LocationInfo, reports []domain.DayReport, units domain.Units) string {
	lines := make([]string, 0, len(reports)+1)
	lines = append(lines, fmt.Sprintf("<u>4-day forecast for %s, %s:</u>", loc.City, loc.Country))
	for _, r := range reports {
		lines = append(lines, fmt.Sprintf("<i><b>%s</b>: %d-%d%s, %s</i>",
			r.DayLabel(), r.MinTemp, r.MaxTemp, units.DegreeSign(), r.Description))
	}
	return strings.Join(lines, "\n")
}
