package engine

import (
	"testing"

	"github.com/hwpanel/menunav/internal/menu"
)

func headlessOf(n int) menu.Menu {
	items := make([]menu.Item, n)
	for i := range items {
		items[i] = textItem(string(rune('a' + i)))
	}
	return headless("test", items...)
}

func headedOf(n int) menu.Menu {
	items := make([]menu.Item, n)
	for i := range items {
		items[i] = textItem(string(rune('a' + i)))
	}
	return &menu.HeadedMenu{
		MenuSpec: menu.MenuSpec{
			Title: menu.Static("test"),
			Items: menu.Static(items),
		},
		Heading:    menu.Static("Heading"),
		SubHeading: menu.Static("sub"),
	}
}

func TestPageCountFor(t *testing.T) {
	cases := []struct {
		name   string
		m      menu.Menu
		n      int
		expect int
	}{
		{"headless empty", headlessOf(0), 0, 1},
		{"headless one", headlessOf(1), 1, 1},
		{"headless full page", headlessOf(3), 3, 1},
		{"headless spill", headlessOf(4), 4, 2},
		{"headless seven", headlessOf(7), 7, 3},
		{"headed empty", headedOf(0), 0, 1},
		{"headed one", headedOf(1), 1, 1},
		{"headed two", headedOf(2), 2, 2},
		{"headed four", headedOf(4), 4, 2},
		{"headed five", headedOf(5), 5, 3},
	}
	for _, tc := range cases {
		if got := pageCountFor(tc.m, tc.n); got != tc.expect {
			t.Fatalf("%s: expected %d pages, got %d", tc.name, tc.expect, got)
		}
	}
}

func TestPageOf(t *testing.T) {
	headlessMenu := headlessOf(7)
	for index, expect := range []int{0, 0, 0, 1, 1, 1, 2} {
		if got := pageOf(headlessMenu, index); got != expect {
			t.Fatalf("headless index %d: expected page %d, got %d", index, expect, got)
		}
	}
	headedMenu := headedOf(7)
	for index, expect := range []int{0, 1, 1, 1, 2, 2, 2} {
		if got := pageOf(headedMenu, index); got != expect {
			t.Fatalf("headed index %d: expected page %d, got %d", index, expect, got)
		}
	}
}

func TestPageBounds(t *testing.T) {
	headlessMenu := headlessOf(7)
	cases := []struct {
		page       int
		start, end int
	}{
		{0, 0, 3},
		{1, 3, 6},
		{2, 6, 7},
	}
	for _, tc := range cases {
		start, end := pageBounds(headlessMenu, tc.page, 7)
		if start != tc.start || end != tc.end {
			t.Fatalf("headless page %d: expected [%d,%d), got [%d,%d)",
				tc.page, tc.start, tc.end, start, end)
		}
	}

	headedMenu := headedOf(7)
	headedCases := []struct {
		page       int
		start, end int
	}{
		{0, 0, 1},
		{1, 1, 4},
		{2, 4, 7},
	}
	for _, tc := range headedCases {
		start, end := pageBounds(headedMenu, tc.page, 7)
		if start != tc.start || end != tc.end {
			t.Fatalf("headed page %d: expected [%d,%d), got [%d,%d)",
				tc.page, tc.start, tc.end, start, end)
		}
	}
}

func TestPageBoundsEmptyMenu(t *testing.T) {
	start, end := pageBounds(headlessOf(0), 0, 0)
	if start != 0 || end != 0 {
		t.Fatalf("expected empty bounds, got [%d,%d)", start, end)
	}
	start, end = pageBounds(headedOf(0), 0, 0)
	if start != 0 || end != 0 {
		t.Fatalf("expected empty headed bounds, got [%d,%d)", start, end)
	}
}
