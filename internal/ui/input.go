package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hwpanel/menunav/internal/engine"
	"github.com/hwpanel/menunav/internal/logging/events"
	fuzzy "github.com/lithammer/fuzzysearch/fuzzy"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.jumping {
		return m.handleJumpKey(key)
	}
	switch key.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "up", "k":
		m.press(engine.ButtonScrollUp)
	case "down", "j":
		m.press(engine.ButtonScrollDown)
	case "enter", "right", "l":
		m.press(engine.ButtonSelect)
	case "esc", "backspace", "left", "h":
		m.press(engine.ButtonBack)
	case "home", "g":
		m.press(engine.ButtonHome)
	case "/":
		if !m.snapshot.IsApplication {
			return m.beginJump()
		}
	}
	return nil
}

func (m *Model) press(btn engine.Button) {
	if m.verbose {
		events.UI.Button(btn.String())
	}
	if m.bridge != nil {
		m.bridge.Press(btn)
	}
}

func (m *Model) beginJump() tea.Cmd {
	m.jumping = true
	// The "/" keystroke that opened the prompt must not land in the input.
	m.jumpSwallow = true
	m.jumpInput.Reset()
	return m.jumpInput.Focus()
}

func (m *Model) handleJumpKey(key tea.KeyMsg) tea.Cmd {
	switch key.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEscape:
		m.endJump()
		return nil
	case tea.KeyEnter:
		query := m.jumpInput.Value()
		m.endJump()
		m.commitJump(query)
		return nil
	}
	// Editing keys flow to the text input in Update.
	return nil
}

func (m *Model) endJump() {
	m.jumping = false
	m.jumpInput.Blur()
	m.jumpInput.Reset()
}

// commitJump resolves the query against the visible menu's item keys and
// moves the highlight to the best fuzzy match.
func (m *Model) commitJump(query string) {
	if query == "" || m.bridge == nil {
		return
	}
	keys := m.bridge.CurrentKeys()
	if len(keys) == 0 {
		return
	}
	matches := fuzzy.RankFindNormalizedFold(query, keys)
	if len(matches) == 0 {
		m.setNotice("no match for " + query)
		return
	}
	best := matches[0]
	for _, candidate := range matches[1:] {
		if candidate.Distance < best.Distance {
			best = candidate
		}
	}
	if m.verbose {
		events.UI.Jump(query, best.Target)
	}
	m.bridge.JumpTo(best.Target)
}
