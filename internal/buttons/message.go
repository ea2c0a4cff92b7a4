package buttons

import (
	"github.com/spetersoncode/slicestore"
	"github.com/spetersoncode/slicestore/slice"
)

// Messages are the texts the message slice cycles through.
var Messages = []string{
	"Hello World",
	"Output Dune message. They're great!",
	"Have a nice read!",
}

// Message is the state of the message slice. I indexes Messages; Value is
// the displayed text and may differ after SetMessage.
type Message struct {
	Value string `json:"value"`
	I     int    `json:"i"`
}

// MessageSlice holds the text shown on the store-bound message button.
var MessageSlice = slice.MustCreate("message", Message{Value: Messages[0]},
	slice.On("nextMessage", func(m Message) Message {
		m.I = (m.I + 1) % len(Messages)
		m.Value = Messages[m.I]
		return m
	}),
	slice.OnPayload("setMessage", func(m Message, text string) Message {
		m.Value = text
		return m
	}),
)

var (
	nextMessageAction = MessageSlice.MustCreator("nextMessage")
	setMessageAction  = slice.PayloadCreator[string](MessageSlice.MustCreator("setMessage"))
)

// NextMessage returns the "message/nextMessage" action.
func NextMessage() slicestore.Action { return nextMessageAction() }

// SetMessage returns a "message/setMessage" action carrying text.
func SetMessage(text string) slicestore.Action { return setMessageAction(text) }

// SelectMessage reads the displayed message from a snapshot.
var SelectMessage = slice.Selector(MessageSlice, func(m Message) string { return m.Value })
