package paging

import "strconv"

// ControlKind identifies a pagination control
type ControlKind int

// Control kinds
const (
	Prev ControlKind = iota
	PageNumber
	Ellipsis
	Next
)

// Control is one element of the pagination bar
type Control struct {
	Kind     ControlKind
	Page     int // target page, 0 for an ellipsis
	Active   bool
	Disabled bool
}

// Label returns the text shown for c
func (c Control) Label() string {
	switch c.Kind {
	case Prev:
		return "Previous"
	case Next:
		return "Next"
	case Ellipsis:
		return "..."
	default:
		return strconv.Itoa(c.Page)
	}
}

// Window returns the first and last page numbers of the visible button range:
// up to five pages centered on current, shifted at the edges to keep five.
func Window(current, totalPages int) (start, end int) {
	if totalPages < 1 {
		return 0, 0
	}

	current = Clamp(current, totalPages)

	start = max(1, current-windowSize/2)
	end = min(totalPages, start+windowSize-1)

	if end-start+1 < windowSize {
		start = max(1, end-windowSize+1)
	}

	return start, end
}

// Controls builds the pagination bar for current out of totalPages. No
// controls are produced when everything fits on one page.
func Controls(current, totalPages int) []Control {
	if totalPages <= 1 {
		return nil
	}

	current = Clamp(current, totalPages)
	start, end := Window(current, totalPages)

	controls := []Control{{Kind: Prev, Page: current - 1, Disabled: current == 1}}

	if start > 1 {
		controls = append(controls, Control{Kind: PageNumber, Page: 1})
		if start > 2 {
			controls = append(controls, Control{Kind: Ellipsis})
		}
	}

	for i := start; i <= end; i++ {
		controls = append(controls, Control{Kind: PageNumber, Page: i, Active: i == current})
	}

	if end < totalPages {
		if end < totalPages-1 {
			controls = append(controls, Control{Kind: Ellipsis})
		}
		controls = append(controls, Control{Kind: PageNumber, Page: totalPages})
	}

	return append(controls, Control{Kind: Next, Page: current + 1, Disabled: current == totalPages})
}
