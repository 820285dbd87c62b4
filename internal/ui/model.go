package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hwpanel/menunav/internal/engine"
	"github.com/hwpanel/menunav/internal/logging/events"
	"github.com/hwpanel/menunav/internal/menu"
	"github.com/hwpanel/menunav/internal/theme"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the button-driven menu screen.
type Model struct {
	bridge *Bridge

	snapshot      engine.Snapshot
	haveSnapshot  bool
	transitioning bool
	activeApp     menu.Application

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	jumping     bool
	jumpSwallow bool
	jumpInput   textinput.Model

	noticeMsg    string
	noticeExpire time.Time

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI around a running engine bridge.
func NewModel(bridge *Bridge, width, height int, showFooter, verbose bool) *Model {
	m := &Model{
		bridge:     bridge,
		showFooter: showFooter,
		verbose:    verbose,
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "jump to item"
	if styles.JumpPrompt != nil {
		input.PromptStyle = *styles.JumpPrompt
	}
	if styles.Placeholder != nil {
		input.PlaceholderStyle = *styles.Placeholder
	}
	m.jumpInput = input
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.bridge == nil {
		return nil
	}
	return waitForEngineEvent(m.bridge)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if m.jumping {
		if m.jumpSwallow {
			m.jumpSwallow = false
		} else {
			var cmd tea.Cmd
			m.jumpInput, cmd = m.jumpInput.Update(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(engineEventMsg{}):    m.handleEngineEventMsg,
		reflect.TypeOf(engineDoneMsg{}):     m.handleEngineDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if m.verbose {
		events.UI.Resize(m.width, m.height)
	}
	return nil
}

func (m *Model) setNotice(message string) {
	m.noticeMsg = message
	m.noticeExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) currentNotice() string {
	if m.noticeMsg != "" && !m.noticeExpire.IsZero() && time.Now().After(m.noticeExpire) {
		m.noticeMsg = ""
		m.noticeExpire = time.Time{}
	}
	return m.noticeMsg
}
