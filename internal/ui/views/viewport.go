package views

import "fmt"

// Viewport keeps a fixed-height window of list rows scrolled so the
// highlighted row stays visible
type Viewport struct {
	Height int // 0 shows every row
	offset int
}

// NewViewport creates a viewport showing at most height rows
func NewViewport(height int) *Viewport {
	return &Viewport{Height: height}
}

// Window returns the half-open range of rows to draw for total rows with
// active highlighted (-1 for none)
func (v *Viewport) Window(active, total int) (int, int) {
	if v.Height <= 0 || total <= v.Height {
		v.offset = 0
		return 0, total
	}

	switch {
	case active < 0:
		v.offset = 0
	case active < v.offset:
		// scroll up
		v.offset = active
	case active >= v.offset+v.Height:
		// scroll down just far enough
		v.offset = active - v.Height + 1
	}

	maxOffset := total - v.Height
	if v.offset > maxOffset {
		v.offset = maxOffset
	}
	if v.offset < 0 {
		v.offset = 0
	}
	return v.offset, v.offset + v.Height
}

// MoreAbove is the indicator for rows hidden above the window
func MoreAbove(n int) string {
	return fmt.Sprintf("↑ %d more", n)
}

// MoreBelow is the indicator for rows hidden below the window
func MoreBelow(n int) string {
	return fmt.Sprintf("↓ %d more", n)
}
