package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spetersoncode/slicestore"
	"github.com/spetersoncode/slicestore/internal/buttons"
	"github.com/spetersoncode/slicestore/store"
)

const hobby = "I enjoy running because it clears my mind and keeps me fit."

var (
	firstMessages  = []string{"Message 1", "Message 2", "Message 3"}
	secondMessages = []string{"Message A", "Message B", "Message C"}
	alphabet       = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	rhymes         = []string{
		"1, 2, Button my shoe",
		"3, 4, Knock at the door",
		"5, 6, Pick up sticks",
		"7, 8, lay them straight",
	}
)

type buttonID int

const (
	firstButton buttonID = iota
	secondButton
	classButton
	exampleButton
	alphabetButton
	hookButton
	decrementButton
	incrementButton
	messageButton
	buttonCount
)

// stateChangedMsg carries the snapshot published by a store notification.
type stateChangedMsg struct {
	state *slicestore.GlobalState
}

// Model is the bubbletea model for the buttons page. Button-local state lives
// here; the counter and the message come from the store.
type Model struct {
	store       *store.Store
	log         *slog.Logger
	changes     chan *slicestore.GlobalState
	unsubscribe store.Unsubscribe

	title string
	state *slicestore.GlobalState
	focus buttonID

	firstLog  string
	secondLog string

	classCount  int
	exampleText string
	letter      int
	rhyme       int // -1 until the hook button is first pressed
	hookText    string
	status      string
	err         error
}

// NewModel creates the page model and subscribes it to st. rng picks the
// second button's message.
func NewModel(st *store.Store, title string, log *slog.Logger, rng *rand.Rand) Model {
	changes := make(chan *slicestore.GlobalState, 1)
	m := Model{
		store:       st,
		log:         log.With("component", "buttons"),
		changes:     changes,
		title:       title,
		state:       st.GetState(),
		firstLog:    strings.Join(firstMessages, ", "),
		secondLog:   secondMessages[rng.IntN(len(secondMessages))],
		exampleText: "Hello!",
		rhyme:       -1,
		hookText:    "Click Me!",
	}
	m.unsubscribe = st.Subscribe(func() {
		publish(changes, st.GetState())
	})
	return m
}

// publish keeps only the newest snapshot in ch. Listeners run under the store
// lock and must not block.
func publish(ch chan *slicestore.GlobalState, gs *slicestore.GlobalState) {
	select {
	case ch <- gs:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- gs:
	default:
	}
}

func waitForChange(ch <-chan *slicestore.GlobalState) tea.Cmd {
	return func() tea.Msg {
		gs, ok := <-ch
		if !ok {
			return nil
		}
		return stateChangedMsg{state: gs}
	}
}

// Init logs the hook button's greeting once and starts listening for store changes.
func (m Model) Init() tea.Cmd {
	m.log.Info("Hello World")
	return waitForChange(m.changes)
}

// Update handles key presses and store notifications.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateChangedMsg:
		m.state = msg.state
		return m, waitForChange(m.changes)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.unsubscribe()
			return m, tea.Quit
		case "right", "tab", "l", "down", "j":
			m.focus = (m.focus + 1) % buttonCount
		case "left", "shift+tab", "h", "up", "k":
			m.focus = (m.focus + buttonCount - 1) % buttonCount
		case "enter", " ":
			m = m.press(m.focus)
		case "+":
			m = m.press(incrementButton)
		case "-":
			m = m.press(decrementButton)
		case "n":
			m = m.press(messageButton)
		}
	}
	return m, nil
}

func (m Model) press(id buttonID) Model {
	m.err = nil
	switch id {
	case firstButton:
		m.status = wellDone(m.firstLog)
		m.log.Info(m.status, "button", "first")
	case secondButton:
		m.status = wellDone(m.secondLog)
		m.log.Info(m.status, "button", "second")
	case classButton:
		m.classCount++
	case exampleButton:
		m.exampleText = "Button clicked!"
	case alphabetButton:
		m.letter = (m.letter + 1) % len(alphabet)
	case hookButton:
		m.rhyme = (m.rhyme + 1) % len(rhymes)
		m.hookText = rhymes[m.rhyme]
	case decrementButton:
		m = m.dispatch(buttons.Decrement())
	case incrementButton:
		m = m.dispatch(buttons.Increment())
	case messageButton:
		m = m.dispatch(buttons.NextMessage())
	}
	return m
}

func (m Model) dispatch(action slicestore.Action) Model {
	if _, err := m.store.Dispatch(action); err != nil {
		m.log.Warn("dispatch failed", "type", string(action.Type), "error", err)
		m.err = err
	}
	return m
}

func wellDone(msg string) string {
	return msg + "! Well done!"
}

func (m Model) count() int {
	return buttons.SelectCount(m.state)
}

func (m Model) message() string {
	return buttons.SelectMessage(m.state)
}

func (m Model) label(id buttonID) string {
	switch id {
	case firstButton:
		return "first button"
	case secondButton:
		return "second button"
	case classButton:
		return fmt.Sprintf("Count: %d", m.classCount)
	case exampleButton:
		return "Message: " + m.exampleText
	case alphabetButton:
		return "Letter: " + string(alphabet[m.letter])
	case hookButton:
		return m.hookText
	case decrementButton:
		return "-"
	case incrementButton:
		return "+"
	case messageButton:
		return m.message()
	default:
		return ""
	}
}
