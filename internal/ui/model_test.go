package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/hwpanel/menunav/internal/engine"
	"github.com/hwpanel/menunav/internal/menu"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func textItem(key string) menu.Item {
	return &menu.ActionItem{ItemSpec: menu.ItemSpec{Key: key, Label: menu.Static(key)}}
}

func demoMenu(keys ...string) menu.Menu {
	items := make([]menu.Item, len(keys))
	for i, key := range keys {
		items[i] = textItem(key)
	}
	return &menu.HeadlessMenu{MenuSpec: menu.MenuSpec{
		Title: menu.Static("root"),
		Items: menu.Static(items),
	}}
}

func TestScreenEventUpdatesSnapshot(t *testing.T) {
	m := NewModel(nil, 0, 0, false, false)
	m.applyEngineEvent(screenEvent{snapshot: engine.Snapshot{Title: "root", Depth: 1}})
	if !m.haveSnapshot || m.snapshot.Title != "root" {
		t.Fatalf("expected snapshot applied, got %+v", m.snapshot)
	}
}

func TestTransitionEventsToggleIndicator(t *testing.T) {
	m := NewModel(nil, 0, 0, false, false)
	m.applyEngineEvent(transitionEvent{transition: engine.Transition{Target: "x"}, started: true})
	if !m.transitioning {
		t.Fatalf("expected transitioning set")
	}
	m.applyEngineEvent(transitionEvent{transition: engine.Transition{Target: "x"}})
	if m.transitioning {
		t.Fatalf("expected transitioning cleared")
	}
}

func TestNoticeEventIsTransient(t *testing.T) {
	m := NewModel(nil, 0, 0, false, false)
	m.applyEngineEvent(noticeEvent{text: "title: boom"})
	if m.currentNotice() != "title: boom" {
		t.Fatalf("expected notice, got %q", m.currentNotice())
	}
}

func TestWindowSizeRespectsFixedDimensions(t *testing.T) {
	m := NewModel(nil, 40, 0, false, false)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.width != 40 {
		t.Fatalf("expected fixed width 40, got %d", m.width)
	}
	if m.height != 30 {
		t.Fatalf("expected height 30, got %d", m.height)
	}
}

func TestQuitKey(t *testing.T) {
	m := NewModel(nil, 0, 0, false, false)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestJumpPromptLifecycle(t *testing.T) {
	m := NewModel(nil, 0, 0, false, false)
	m.Update(keyMsg("/"))
	if !m.jumping {
		t.Fatalf("expected jump mode")
	}
	if m.jumpInput.Value() != "" {
		t.Fatalf("expected the opening slash swallowed, got %q", m.jumpInput.Value())
	}
	m.Update(keyMsg("net"))
	if m.jumpInput.Value() != "net" {
		t.Fatalf("expected typed query, got %q", m.jumpInput.Value())
	}
	m.Update(keyMsg("esc"))
	if m.jumping || m.jumpInput.Value() != "" {
		t.Fatalf("expected jump cancelled")
	}
}

func TestBridgeKeysAndJump(t *testing.T) {
	bridge := NewBridge(engine.Config{})
	defer bridge.Stop()
	bridge.SetRoot(demoMenu("network", "display", "sound", "volume"))

	keys := bridge.CurrentKeys()
	want := []string{"network", "display", "sound", "volume"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("unexpected keys (-want +got):\n%s", diff)
	}

	m := NewModel(bridge, 0, 0, false, false)
	m.Update(keyMsg("/"))
	m.Update(keyMsg("snd"))
	m.Update(keyMsg("enter"))

	var cursorKey string
	bridge.loop.Call(func() { cursorKey = bridge.eng.Current().CursorKey() })
	if cursorKey != "sound" {
		t.Fatalf("expected jump to sound, got %q", cursorKey)
	}
}

func TestPressForwardsToEngine(t *testing.T) {
	bridge := NewBridge(engine.Config{})
	defer bridge.Stop()
	bridge.SetRoot(demoMenu("a", "b", "c"))

	m := NewModel(bridge, 0, 0, false, false)
	m.Update(keyMsg("down"))

	var cursorKey string
	bridge.loop.Call(func() { cursorKey = bridge.eng.Current().CursorKey() })
	if cursorKey != "b" {
		t.Fatalf("expected cursor on b, got %q", cursorKey)
	}
}
