// Package calendar models the responsive trainings calendar: which view type
// and toolbar a given viewport gets, and the card handed to the event detail
// modal on click. Presentation only; it owns no durable state.
package calendar

type ViewType string

const (
	ViewList  ViewType = "listWeek"
	ViewWeek  ViewType = "timeGridWeek"
	ViewMonth ViewType = "dayGridMonth"
)

type Toolbar struct {
	Start  string
	Center string
	End    string
}

var (
	ToolbarMobile  = Toolbar{Start: "title", Center: "", End: "today prev,next"}
	ToolbarDesktop = Toolbar{Start: "prev,next today", Center: "title", End: "dayGridMonth,timeGridWeek,listWeek"}
)

// Breakpoints follow the stylesheet grid: narrow gets the list, medium the
// week grid, wide the month grid.
const (
	breakpointSM = 576
	breakpointLG = 992
)

func ViewFor(width int) ViewType {
	switch {
	case width < breakpointSM:
		return ViewList
	case width < breakpointLG:
		return ViewWeek
	default:
		return ViewMonth
	}
}

func ToolbarFor(width int) Toolbar {
	if width < breakpointSM {
		return ToolbarMobile
	}
	return ToolbarDesktop
}

// View tracks the active view type for a viewport width and re-applies the
// rule on resize.
type View struct {
	width   int
	view    ViewType
	toolbar Toolbar
}

func NewView(width int) *View {
	return &View{width: width, view: ViewFor(width), toolbar: ToolbarFor(width)}
}

func (v *View) Type() ViewType   { return v.view }
func (v *View) Toolbar() Toolbar { return v.toolbar }

// Resize applies the breakpoint rule for the new width and reports whether
// the view type changed (the cue to swap the toolbar layout too).
func (v *View) Resize(width int) bool {
	v.width = width
	next := ViewFor(width)
	v.toolbar = ToolbarFor(width)
	if next == v.view {
		return false
	}
	v.view = next
	return true
}
