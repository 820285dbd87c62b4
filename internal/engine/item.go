package engine

import "github.com/hwpanel/menunav/internal/menu"

// itemCell holds the resolved presentation values for one item on the
// visible page. Cells are rebuilt on every menu-scope rebind; subscribable
// item fields keep writing into them until the scope clears.
type itemCell struct {
	label       string
	icon        string
	color       string
	background  string
	isShort     bool
	progress    float64
	hasProgress bool
}

// StackItem is one entry in the navigation stack. It wraps exactly one of
// {menu, application} plus its pagination cursor, its highlighted item, its
// open-child selection, and the registry owning its subscriptions. A stack
// item is owned exclusively by the stack at its position and is destroyed
// when popped.
type StackItem struct {
	id     uint64
	menu   menu.Menu
	app    menu.Application
	parent *StackItem

	registry Registry
	// binding keeps a live-opened entity (subscribable submenu or
	// application) tracking its source. It lives outside the scope
	// registries so replacing the item's menu does not cancel it; it is
	// cancelled only on destruction.
	binding *Subscription
	// appBindings holds the live application binding per item opened from
	// this menu, so re-selecting an item never stacks a second subscription.
	appBindings map[*menu.ApplicationItem]*Subscription

	pageIndex int
	cursor    int
	selection *Selection

	items      []menu.Item
	itemsBound bool

	title       string
	heading     string
	subHeading  string
	placeholder string
	cells       map[int]*itemCell
}

// IsMenu reports whether the item wraps a menu.
func (it *StackItem) IsMenu() bool { return it.menu != nil }

// Menu returns the wrapped menu, or nil for application items.
func (it *StackItem) Menu() menu.Menu { return it.menu }

// Application returns the wrapped application, or nil for menu items.
func (it *StackItem) Application() menu.Application { return it.app }

// Parent returns the stack item that opened this one.
func (it *StackItem) Parent() *StackItem { return it.parent }

// PageIndex returns the current pagination cursor.
func (it *StackItem) PageIndex() int { return it.pageIndex }

// Cursor returns the index of the highlighted item in the resolved list.
func (it *StackItem) Cursor() int { return it.cursor }

// Selection returns the open-child selection, if any.
func (it *StackItem) Selection() *Selection { return it.selection }

// Items returns the latest resolved item list.
func (it *StackItem) Items() []menu.Item { return it.items }

// Title returns the latest resolved title.
func (it *StackItem) Title() string { return it.title }

// CursorKey returns the key of the highlighted item, or "".
func (it *StackItem) CursorKey() string {
	if it.cursor < 0 || it.cursor >= len(it.items) {
		return ""
	}
	return menu.ItemKey(it.items[it.cursor])
}

// hasInLineage reports whether this item or any of its ancestors wraps the
// given application.
func (it *StackItem) hasInLineage(app menu.Application) bool {
	for node := it; node != nil; node = node.parent {
		if node.app != nil && node.app == app {
			return true
		}
	}
	return false
}

// reconcileCursor carries the highlighted item across an item-list
// replacement. If the previously highlighted key exists in the new sequence
// the cursor follows it to its new position; otherwise it falls back to the
// clamped default.
func (it *StackItem) reconcileCursor(newItems []menu.Item) {
	if key := it.CursorKey(); key != "" {
		if idx := indexOfKey(newItems, key); idx >= 0 {
			it.cursor = idx
			return
		}
	}
	// The highlighted item is gone; fall back to the page-local default.
	cursor := it.cursor
	if cursor >= len(newItems) {
		cursor = len(newItems) - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	start, _ := pageBounds(it.menu, pageOf(it.menu, cursor), len(newItems))
	it.cursor = start
}

func indexOfKey(items []menu.Item, key string) int {
	if key == "" {
		return -1
	}
	for i, item := range items {
		if menu.ItemKey(item) == key {
			return i
		}
	}
	return -1
}
