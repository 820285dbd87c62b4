package engine

import "github.com/hwpanel/menunav/internal/menu"

// Selection records the child opened beneath a menu level, identified by the
// item key that opened it. When a menu is replaced, the deepest chain of
// matching keys carries the user's sub-navigation across the replacement.
type Selection struct {
	Key   string
	Child *StackItem
}

// findSubMenuByKey returns the first SubMenuItem carrying the given key.
// When several candidates share a key the first match wins.
func findSubMenuByKey(items []menu.Item, key string) *menu.SubMenuItem {
	if key == "" {
		return nil
	}
	for _, item := range items {
		sub, ok := item.(*menu.SubMenuItem)
		if !ok {
			continue
		}
		if menu.ItemKey(sub) == key {
			return sub
		}
	}
	return nil
}
