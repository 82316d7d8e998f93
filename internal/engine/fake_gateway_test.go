package engine

import (
	"sync"
)

type gatewayCall struct {
	Method     string
	UserID     int64
	MessageID  int
	CallbackID string
	Text       string
	Message    Message
	Enabled    bool
}

// fakeGateway records everything the engine tries to say
type fakeGateway struct {
	mu      sync.Mutex
	calls   []gatewayCall
	sendErr error
}

func (g *fakeGateway) record(c gatewayCall) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, c)
}

func (g *fakeGateway) Send(userID int64, msg Message) error {
	g.record(gatewayCall{Method: "Send", UserID: userID, Text: msg.Text, Message: msg})
	return g.sendErr
}

func (g *fakeGateway) Reply(userID int64, messageID int, text string) error {
	g.record(gatewayCall{Method: "Reply", UserID: userID, MessageID: messageID, Text: text})
	return g.sendErr
}

func (g *fakeGateway) Edit(userID int64, messageID int, text string) error {
	g.record(gatewayCall{Method: "Edit", UserID: userID, MessageID: messageID, Text: text})
	return nil
}

func (g *fakeGateway) Delete(userID int64, messageID int) error {
	g.record(gatewayCall{Method: "Delete", UserID: userID, MessageID: messageID})
	return nil
}

func (g *fakeGateway) Typing(userID int64) error {
	g.record(gatewayCall{Method: "Typing", UserID: userID})
	return nil
}

func (g *fakeGateway) Answer(callbackID, text string) error {
	g.record(gatewayCall{Method: "Answer", CallbackID: callbackID, Text: text})
	return nil
}

func (g *fakeGateway) SetMenuCommands(enabled bool) error {
	g.record(gatewayCall{Method: "SetMenuCommands", Enabled: enabled})
	return nil
}

// texts returns the text of every Send and Reply, in order
func (g *fakeGateway) texts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []string
	for _, c := range g.calls {
		if c.Method == "Send" || c.Method == "Reply" {
			out = append(out, c.Text)
		}
	}
	return out
}

func (g *fakeGateway) byMethod(method string) []gatewayCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []gatewayCall
	for _, c := range g.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}
