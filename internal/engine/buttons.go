package engine

// Button is a keyboard option. Reply keyboards send Label as text, inline
// keyboards send Unique as callback data.
type Button struct {
	Unique string
	Label  string
}

var (
	ButtonCurrent  = Button{Unique: "current", Label: "⛅ Current"}
	ButtonTomorrow = Button{Unique: "tomorrow", Label: "➡️️️ Tomorrow"}
	ButtonForecast = Button{Unique: "forecast", Label: "📆 For 4 days"}
	ButtonSettings = Button{Unique: "settings", Label: "☑️️ Settings"}
	ButtonLocation = Button{Unique: "location", Label: "🌎 Change location"}
	ButtonLanguage = Button{Unique: "language", Label: "🔤️ Change language"}
	ButtonUnits    = Button{Unique: "units", Label: "📐 Change units"}
	ButtonEnglish  = Button{Unique: "english", Label: "🇺🇸 English"}
	ButtonRussian  = Button{Unique: "russian", Label: "🇷🇺 Русский"}
	ButtonMetric   = Button{Unique: "metric", Label: "📏 Metric"}
	ButtonImperial = Button{Unique: "imperial", Label: "👑 Imperial"}
	ButtonBack     = Button{Unique: "back", Label: "↩️ Back"}
)

// Layout returns the button rows of a keyboard
func Layout(kb Keyboard) [][]Button {
	switch kb {
	case KeyboardMain:
		return [][]Button{
			{ButtonCurrent, ButtonTomorrow},
			{ButtonForecast, ButtonSettings},
		}
	case KeyboardSettings:
		return [][]Button{
			{ButtonLocation},
			{ButtonLanguage, ButtonUnits},
			{ButtonBack},
		}
	case KeyboardLocation:
		return [][]Button{{ButtonBack}}
	case KeyboardLanguage:
		return [][]Button{
			{ButtonEnglish, ButtonRussian},
			{ButtonBack},
		}
	case KeyboardUnits:
		return [][]Button{
			{ButtonMetric, ButtonImperial},
			{ButtonBack},
		}
	}
	return nil
}

// MenuCommand is an entry of the bot's command menu
type MenuCommand struct {
	Command     string
	Description string
}

// MenuCommands are shown while the user is in the main menu
var MenuCommands = []MenuCommand{
	{Command: "current", Description: "Get the current weather"},
	{Command: "tomorrow", Description: "Get a forecast for tomorrow"},
	{Command: "forecast", Description: "Get a 4-day forecast"},
	{Command: "settings", Description: "Change your preferences"},
}
