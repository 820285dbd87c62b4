package menu

// ItemSpec holds the presentation attributes shared by all item variants.
// Colors are hex strings ("#rrggbb"); the renderer decides how to interpret
// them. Progress is in [0..1]; HasProgress gates it.
type ItemSpec struct {
	Key             string
	Label           Field[string]
	Icon            Field[string]
	Color           Field[string]
	BackgroundColor Field[string]
	IsShort         Field[bool]
	Opacity         float64
	Progress        Field[float64]
	HasProgress     bool
}

// Item is a selectable menu entry. Items are value-like; the Key identifies
// equivalent items across item-list replacements for selection persistence.
type Item interface {
	Spec() *ItemSpec
}

// ActionItem invokes Action when selected. The return value may be nil, a
// Menu, a MenuField (subscribable menu), an Application, or a
// func() Application used as an application constructor; anything else is
// reported and ignored.
type ActionItem struct {
	ItemSpec
	Action func() any
}

// Spec implements Item.
func (i *ActionItem) Spec() *ItemSpec { return &i.ItemSpec }

// ApplicationItem directly references an application to open.
type ApplicationItem struct {
	ItemSpec
	Application Field[Application]
}

// Spec implements Item.
func (i *ApplicationItem) Spec() *ItemSpec { return &i.ItemSpec }

// SubMenuItem opens another menu when selected. A subscribable SubMenu keeps
// the opened menu live-updated while it is on the stack.
type SubMenuItem struct {
	ItemSpec
	SubMenu MenuField
}

// Spec implements Item.
func (i *SubMenuItem) Spec() *ItemSpec { return &i.ItemSpec }

// ItemKey returns the item's key, falling back to its resolved label when no
// key is set. Subscribable labels yield an empty fallback.
func ItemKey(i Item) string {
	if i == nil {
		return ""
	}
	spec := i.Spec()
	if spec.Key != "" {
		return spec.Key
	}
	if _, ok := spec.Label.Source(); ok {
		return ""
	}
	label, err := spec.Label.Eval()
	if err != nil {
		return ""
	}
	return label
}
