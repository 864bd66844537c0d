package gui

// MenuItem is an entry of a context menu. An item with an empty header and no
// sub-items is a separator.
type MenuItem struct {
	Header  string
	Icon    string // Single glyph drawn before the header
	ToolTip string

	// CanCheck items flip Checked when activated.
	CanCheck bool
	Checked  bool

	// Items are sub-entries. An item with sub-items opens them instead of
	// running its action.
	Items []*MenuItem

	action func()
}

// NewMenuItem creates an item that runs action when activated.
func NewMenuItem(header string, action func()) *MenuItem {
	return &MenuItem{Header: header, action: action}
}

// NewSeparator creates a separator line.
func NewSeparator() *MenuItem {
	return &MenuItem{}
}

// IsSeparator reports whether the item draws as a separator line.
func (m *MenuItem) IsSeparator() bool {
	return m.Header == "" && len(m.Items) == 0
}

// HasItems reports whether the item opens sub-entries.
func (m *MenuItem) HasItems() bool {
	return len(m.Items) > 0
}

// Add appends sub-items and returns m for chaining.
func (m *MenuItem) Add(items ...*MenuItem) *MenuItem {
	m.Items = append(m.Items, items...)
	return m
}

// Execute runs the item's action, if any.
func (m *MenuItem) Execute() {
	if m.action != nil {
		m.action()
	}
}

// activate is what a click on the item does.
func (m *MenuItem) activate() {
	if m.CanCheck {
		m.Checked = !m.Checked
	}
	m.Execute()
}
