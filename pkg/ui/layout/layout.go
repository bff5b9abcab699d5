// Package layout partitions a rectangle into sub-rectangles according to
// an ordered list of constraints. The returned rects are always disjoint
// and contained within the input area.
package layout

import (
	"github.com/frescoui/fresco/pkg/ui/cellbuf"
)

// Direction selects the axis a split runs along.
type Direction int

const (
	// Horizontal lays sections out left to right.
	Horizontal Direction = iota
	// Vertical lays sections out top to bottom.
	Vertical
)

type constraintKind int

const (
	kindLength constraintKind = iota
	kindPercentage
	kindRatio
	kindMin
	kindMax
	kindFill
)

// Constraint describes how much of the axis one section should receive.
type Constraint struct {
	kind constraintKind
	a    int
	b    int
}

// Length requests exactly n cells.
func Length(n int) Constraint { return Constraint{kind: kindLength, a: n} }

// Percentage requests n percent of the full axis.
func Percentage(n int) Constraint { return Constraint{kind: kindPercentage, a: n} }

// Ratio requests num/den of the full axis.
func Ratio(num, den int) Constraint { return Constraint{kind: kindRatio, a: num, b: den} }

// Min requests at least n cells.
func Min(n int) Constraint { return Constraint{kind: kindMin, a: n} }

// Max requests at most n cells.
func Max(n int) Constraint { return Constraint{kind: kindMax, a: n} }

// Fill requests a weighted share of whatever space remains after the
// other constraints are satisfied. A zero weight counts as one.
func Fill(weight int) Constraint { return Constraint{kind: kindFill, a: weight} }

// Layout is a reusable split description.
type Layout struct {
	direction   Direction
	margin      int
	constraints []Constraint
}

// New builds a layout along direction with the given constraints.
func New(direction Direction, constraints ...Constraint) Layout {
	return Layout{direction: direction, constraints: constraints}
}

// WithMargin shrinks the area by m cells on every side before splitting.
func (l Layout) WithMargin(m int) Layout {
	l.margin = m
	return l
}

// Solve partitions area according to the constraints; the helper form of
// Layout.Split for callers that do not retain a Layout value.
func Solve(constraints []Constraint, direction Direction, margin int, area cellbuf.Rect) []cellbuf.Rect {
	return New(direction, constraints...).WithMargin(margin).Split(area)
}

// Split partitions area into one rect per constraint, in order. Sections
// are sized in three passes: fixed and proportional constraints first
// (percentages and ratios against the full axis, lengths against what
// remains), then remaining space distributed across Fill constraints by
// weight, then Min/Max bounds enforced with the total clamped back into
// the area.
func (l Layout) Split(area cellbuf.Rect) []cellbuf.Rect {
	inner := area.Inner(l.margin)
	n := len(l.constraints)
	if n == 0 {
		return nil
	}

	total := inner.Width
	if l.direction == Vertical {
		total = inner.Height
	}

	sizes := make([]int, n)
	remaining := total
	for i, c := range l.constraints {
		var s int
		switch c.kind {
		case kindLength, kindMin:
			s = c.a
		case kindMax:
			s = c.a
		case kindPercentage:
			s = total * c.a / 100
		case kindRatio:
			if c.b > 0 {
				s = total * c.a / c.b
			}
		case kindFill:
			continue
		}
		if s > remaining {
			s = remaining
		}
		if s < 0 {
			s = 0
		}
		sizes[i] = s
		remaining -= s
	}

	if remaining > 0 {
		weights := 0
		for _, c := range l.constraints {
			if c.kind == kindFill {
				w := c.a
				if w <= 0 {
					w = 1
				}
				weights += w
			}
		}
		if weights > 0 {
			distributed := 0
			last := -1
			for i, c := range l.constraints {
				if c.kind != kindFill {
					continue
				}
				w := c.a
				if w <= 0 {
					w = 1
				}
				sizes[i] = remaining * w / weights
				distributed += sizes[i]
				last = i
			}
			// Round-off cells go to the final fill section.
			if last >= 0 {
				sizes[last] += remaining - distributed
			}
		}
	}

	for i, c := range l.constraints {
		switch c.kind {
		case kindMin:
			if sizes[i] < c.a {
				sizes[i] = c.a
			}
		case kindMax:
			if sizes[i] > c.a {
				sizes[i] = c.a
			}
		}
	}

	rects := make([]cellbuf.Rect, n)
	offset := 0
	for i := range l.constraints {
		s := sizes[i]
		if offset+s > total {
			s = total - offset
			if s < 0 {
				s = 0
			}
		}
		if l.direction == Horizontal {
			rects[i] = cellbuf.NewRect(inner.X+offset, inner.Y, s, inner.Height)
		} else {
			rects[i] = cellbuf.NewRect(inner.X, inner.Y+offset, inner.Width, s)
		}
		offset += s
	}
	return rects
}
