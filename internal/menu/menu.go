package menu

// MenuSpec holds the fields shared by both menu variants. Each field may be
// a literal, a function, or a subscribable source; see Field.
type MenuSpec struct {
	Title       Field[string]
	Items       Field[[]Item]
	Placeholder Field[string]
}

// Menu is a page of selectable items. Two variants exist: HeadedMenu carries
// a heading page, HeadlessMenu starts directly with the item list.
type Menu interface {
	Spec() *MenuSpec
}

// HeadedMenu renders a heading and sub-heading on its first page, stating
// the purpose of the menu; items start beneath them.
type HeadedMenu struct {
	MenuSpec
	Heading    Field[string]
	SubHeading Field[string]
}

// Spec implements Menu.
func (m *HeadedMenu) Spec() *MenuSpec { return &m.MenuSpec }

// HeadlessMenu has no heading page; the first page is the item list itself.
type HeadlessMenu struct {
	MenuSpec
}

// Spec implements Menu.
func (m *HeadlessMenu) Spec() *MenuSpec { return &m.MenuSpec }
