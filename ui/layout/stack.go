package layout

import "github.com/drake/arbor/event"

// Column stacks children vertically. Each child gets the full width and its
// preferred height, separated by gap lines. Children that do not fit get an
// empty rectangle below the area.
func Column(area Rect, hints []event.Size, gap int) []Rect {
	rects := make([]Rect, len(hints))
	y := area.Y
	bottom := area.Y + area.H
	for i, h := range hints {
		if i > 0 {
			y += gap
		}
		height := clamp(h.H, 0, bottom-y)
		rects[i] = Rect{X: area.X, Y: y, W: area.W, H: height}
		y += height
	}
	return rects
}

// Row places children side by side. Preferred widths are used when they fit;
// otherwise the available width is distributed in proportion to them.
func Row(area Rect, hints []event.Size, gap int) []Rect {
	rects := make([]Rect, len(hints))
	if len(hints) == 0 {
		return rects
	}
	avail := area.W - gap*(len(hints)-1)
	if avail < 0 {
		avail = 0
	}
	weights := make([]int, len(hints))
	total := 0
	for i, h := range hints {
		weights[i] = h.W
		total += h.W
	}
	widths := weights
	if total > avail {
		widths = distribute(avail, weights)
	}
	x := area.X
	for i, w := range widths {
		if i > 0 {
			x += gap
		}
		rects[i] = Rect{X: x, Y: area.Y, W: w, H: area.H}
		x += w
	}
	return rects
}

// Center places a rectangle of the given size in the middle of area,
// shrinking it to fit.
func Center(area Rect, size event.Size) Rect {
	w := clamp(size.W, 0, area.W)
	h := clamp(size.H, 0, area.H)
	return Rect{
		X: area.X + (area.W-w)/2,
		Y: area.Y + (area.H-h)/2,
		W: w,
		H: h,
	}
}

// SumColumn returns the size of children stacked in a column.
func SumColumn(hints []event.Size, gap int) event.Size {
	var s event.Size
	for i, h := range hints {
		if i > 0 {
			s.H += gap
		}
		s.H += h.H
		s.W = max(s.W, h.W)
	}
	return s
}

// SumRow returns the size of children placed in a row.
func SumRow(hints []event.Size, gap int) event.Size {
	var s event.Size
	for i, h := range hints {
		if i > 0 {
			s.W += gap
		}
		s.W += h.W
		s.H = max(s.H, h.H)
	}
	return s
}

// distribute splits fullWidth according to weights, spreading the rounding
// error across all elements instead of leaving it to the last one.
func distribute(fullWidth int, weights []int) []int {
	remainedWidth := fullWidth
	remainedWeight := 0
	for _, weight := range weights {
		remainedWeight += weight
	}

	widths := make([]int, len(weights))
	for i, weight := range weights {
		if remainedWeight == 0 {
			break
		}
		widths[i] = remainedWidth * weight / remainedWeight
		remainedWidth -= widths[i]
		remainedWeight -= weight
	}
	return widths
}
