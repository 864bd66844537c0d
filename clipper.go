package gui

// rowClipper computes which rows of a fixed-height list intersect the view.
// Rows outside [Start, End) still run their input logic in the tree but skip
// drawing.
type rowClipper struct {
	Start, End int
	ItemHeight float32
	Total      int
}

func newRowClipper(total int, itemHeight, viewHeight, scrollY float32) rowClipper {
	c := rowClipper{ItemHeight: itemHeight, Total: total}
	if total == 0 || itemHeight <= 0 {
		return c
	}
	c.Start = max(0, int(scrollY/itemHeight))
	// one extra row each side for partially visible rows
	c.End = c.Start + int(viewHeight/itemHeight) + 2
	c.Start = min(c.Start, total)
	c.End = min(c.End, total)
	return c
}

// Visible reports whether row i should be drawn.
func (c rowClipper) Visible(i int) bool {
	return i >= c.Start && i < c.End
}

// RowY returns the top of row i for a list whose content starts at top.
func (c rowClipper) RowY(i int, top, scrollY float32) float32 {
	return top + float32(i)*c.ItemHeight - scrollY
}

// ContentHeight is the height of all rows.
func (c rowClipper) ContentHeight() float32 {
	return float32(c.Total) * c.ItemHeight
}

// MaxScroll is the largest scroll offset that still fills the view.
func (c rowClipper) MaxScroll(viewHeight float32) float32 {
	return maxf(0, c.ContentHeight()-viewHeight)
}

// ScrollToRow returns the smallest change of scroll that shows row i.
func (c rowClipper) ScrollToRow(i int, scroll, viewHeight float32) float32 {
	if i < 0 || i >= c.Total {
		return scroll
	}
	top := float32(i) * c.ItemHeight
	switch {
	case top < scroll:
		return top
	case top+c.ItemHeight > scroll+viewHeight:
		return top + c.ItemHeight - viewHeight
	}
	return scroll
}
