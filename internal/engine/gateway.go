package engine

// Keyboard selects the option set attached to an outgoing message
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	KeyboardRemove
	KeyboardMain
	KeyboardSettings
	KeyboardLocation
	KeyboardLanguage
	KeyboardUnits
)

// Message is an outgoing chat message
type Message struct {
	Text     string
	HTML     bool
	Keyboard Keyboard
}

// Gateway delivers engine output to the chat transport
type Gateway interface {
	Send(userID int64, msg Message) error
	Reply(userID int64, messageID int, text string) error
	Edit(userID int64, messageID int, text string) error
	Delete(userID int64, messageID int) error
	Typing(userID int64) error
	Answer(callbackID, text string) error
	SetMenuCommands(enabled bool) error
}

// Kind is the channel an event arrived through
type Kind int

const (
	KindCommand Kind = iota
	KindText
	KindCallback
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindText:
		return "text"
	case KindCallback:
		return "callback"
	}
	return "unknown"
}

// Event is one inbound user action. For callbacks MessageID is the message
// carrying the pressed button.
type Event struct {
	UserID     int64
	Kind       Kind
	Payload    string
	MessageID  int
	CallbackID string
	FirstName  string
}
