package engine

import "github.com/hwpanel/menunav/internal/menu"

// PageSize is the number of item rows on a full page, matching the three
// physical selection buttons beside the device screen.
const PageSize = 3

// fadedOpacity is applied to the surrounding preview rows.
const fadedOpacity = 0.6

// PageItem is a fully resolved row of the visible page.
type PageItem struct {
	Key             string
	Label           string
	Icon            string
	Color           string
	BackgroundColor string
	IsShort         bool
	Opacity         float64
	Progress        float64
	HasProgress     bool
	Faded           bool
	Selected        bool
}

// Page is the effective content of the currently visible menu page.
type Page struct {
	Index int
	Count int

	ShowHeading bool
	Heading     string
	SubHeading  string

	// Placeholder is rendered instead of the rows when Empty is set.
	Placeholder string
	Empty       bool

	Items []PageItem
	// Cursor indexes the highlighted row within Items, -1 when none.
	Cursor int
}

func isHeaded(m menu.Menu) bool {
	_, ok := m.(*menu.HeadedMenu)
	return ok
}

// pageCountFor returns the number of pages for a menu with n items. A headed
// menu dedicates two rows of its first page to the heading block, so the
// first page holds a single item.
func pageCountFor(m menu.Menu, n int) int {
	if m == nil {
		return 1
	}
	if isHeaded(m) {
		n += PageSize - 1
	}
	pages := (n + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// pageOf returns the page holding the item at the given index.
func pageOf(m menu.Menu, index int) int {
	if index <= 0 {
		return 0
	}
	if isHeaded(m) {
		return (index + PageSize - 1) / PageSize
	}
	return index / PageSize
}

// pageBounds returns the half-open item index range [start, end) shown on
// the given page.
func pageBounds(m menu.Menu, page, n int) (int, int) {
	offset := 0
	if isHeaded(m) {
		offset = -(PageSize - 1)
	}
	start := page*PageSize + offset
	if start < 0 {
		start = 0
	}
	end := page*PageSize + PageSize + offset
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return start, end
}
