package dashboard

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/asdclub/club-console/internal/itdate"
	"github.com/asdclub/club-console/internal/models"
)

// Display label and class tables, carried over from the web pages. Badge
// classes keep the original Bootstrap tokens as stable identifiers.

func StateLabel(s models.ActivityState) string {
	labels := map[models.ActivityState]string{
		models.StateDraft:      "Bozza",
		models.StateToConfirm:  "Da confermare",
		models.StateConfirmed:  "Confermato",
		models.StatePostponed:  "Rimandata",
		models.StateInProgress: "In corso",
		models.StateCancelled:  "Annullato",
		models.StateCompleted:  "Completato",
	}
	if s == "" {
		return "Sconosciuto"
	}
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

func StateClass(s models.ActivityState) string {
	classes := map[models.ActivityState]string{
		models.StateDraft:      "draft",
		models.StateToConfirm:  "pending",
		models.StateConfirmed:  "confirmed",
		models.StatePostponed:  "pending",
		models.StateInProgress: "in-progress",
		models.StateCancelled:  "cancelled",
		models.StateCompleted:  "completed",
	}
	return classes[s]
}

func StateBadgeClass(s models.ActivityState) string {
	classes := map[models.ActivityState]string{
		models.StateDraft:      "bg-secondary",
		models.StateToConfirm:  "bg-warning text-dark",
		models.StateConfirmed:  "bg-success",
		models.StatePostponed:  "bg-warning text-dark",
		models.StateInProgress: "bg-primary",
		models.StateCancelled:  "bg-danger",
		models.StateCompleted:  "bg-info",
	}
	if c, ok := classes[s]; ok {
		return c
	}
	return "bg-secondary"
}

func PaymentMethodLabel(method string) string {
	if method == "" {
		return "N/A"
	}
	labels := map[string]string{
		"contanti": "Contanti",
		"carta":    "Carta",
		"bonifico": "Bonifico",
		"assegno":  "Assegno",
		"voucher":  "Voucher",
		"altro":    "Altro",
	}
	if l, ok := labels[method]; ok {
		return l
	}
	return method
}

func PaymentStateLabel(s models.PaymentState) string {
	labels := map[models.PaymentState]string{
		models.PaymentDue:      "Da effettuare",
		models.PaymentToVerify: "Da verificare",
		models.PaymentSettled:  "Confermato",
	}
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

func PaymentStateClass(s models.PaymentState) string {
	classes := map[models.PaymentState]string{
		models.PaymentDue:      "bg-danger",
		models.PaymentToVerify: "bg-warning text-dark",
		models.PaymentSettled:  "bg-success",
	}
	if c, ok := classes[s]; ok {
		return c
	}
	return "bg-secondary"
}

// CoverageClass is shared between the requirement tab badges and the list
// badges: full coverage is success, half or better warning, below danger.
func CoverageClass(percentage float64) string {
	switch {
	case percentage >= 100:
		return "bg-success"
	case percentage >= 50:
		return "bg-warning"
	default:
		return "bg-danger"
	}
}

// SidebarColor distinguishes exactly-zero coverage from partial.
func SidebarColor(percentage float64) string {
	switch {
	case percentage >= 100:
		return "#198754"
	case percentage > 0:
		return "#ffc107"
	default:
		return "#dc3545"
	}
}

// FilterByCoverage applies the client-side coverage bucket: "100" keeps fully
// covered, "partial" keeps (0,100) exclusive, "0" keeps exactly uncovered.
// Any other bucket keeps everything.
func FilterByCoverage(activities []models.Activity, bucket string) []models.Activity {
	if bucket == "" {
		return activities
	}
	out := make([]models.Activity, 0, len(activities))
	for _, a := range activities {
		c := a.CoveragePercentage
		switch bucket {
		case "100":
			if c >= 100 {
				out = append(out, a)
			}
		case "partial":
			if c > 0 && c < 100 {
				out = append(out, a)
			}
		case "0":
			if c == 0 {
				out = append(out, a)
			}
		default:
			out = append(out, a)
		}
	}
	return out
}

// formatPercent renders 60 rather than 60.0 for whole percentages.
func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// CoverageBadgeText renders "3/5 (60%)".
func CoverageBadgeText(assigned, required int, percentage float64) string {
	return fmt.Sprintf("%d/%d (%s%%)", assigned, required, formatPercent(percentage))
}

// DateGroup is one date header plus its activities.
type DateGroup struct {
	Date   string
	Header string
	Items  []models.Activity
}

// GroupByDate partitions activities by their date field, keeping the server's
// date order (first occurrence) and, when sortByStart is set, ordering within
// each date by start time.
func GroupByDate(activities []models.Activity, sortByStart bool) []DateGroup {
	index := make(map[string]int)
	var groups []DateGroup
	for _, a := range activities {
		i, ok := index[a.Date]
		if !ok {
			i = len(groups)
			index[a.Date] = i
			groups = append(groups, DateGroup{Date: a.Date, Header: headerFor(a.Date)})
		}
		groups[i].Items = append(groups[i].Items, a)
	}
	if sortByStart {
		for i := range groups {
			items := groups[i].Items
			sort.SliceStable(items, func(a, b int) bool {
				return items[a].StartTime < items[b].StartTime
			})
		}
	}
	return groups
}

func headerFor(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return itdate.FormatHeader(t)
}

// ListItem is the rendered row of the list view.
type ListItem struct {
	ID            int64
	Title         string
	TimeSpan      string
	TypeName      string
	StateLabel    string
	StateClass    string
	CoverageBadge string
	CoverageClass string
	SidebarColor  string
	PaymentBadge  string
}

func NewListItem(a models.Activity) ListItem {
	item := ListItem{
		ID:            a.ID,
		Title:         a.Title,
		TimeSpan:      a.StartTime + " - " + a.EndTime,
		TypeName:      "N/A",
		StateLabel:    StateLabel(a.State),
		StateClass:    StateClass(a.State),
		CoverageBadge: formatPercent(a.CoveragePercentage) + "% coperto",
		CoverageClass: CoverageClass(a.CoveragePercentage),
		SidebarColor:  SidebarColor(a.CoveragePercentage),
	}
	if a.ActivityType != nil && a.ActivityType.Name != "" {
		item.TypeName = a.ActivityType.Name
	}
	if a.PaymentAmount != nil {
		item.PaymentBadge = fmt.Sprintf("€ %s", formatPercent(*a.PaymentAmount))
	}
	return item
}

// CalendarEvent is the event-source entry for the activities calendar,
// including the styling metadata the web page derived per event.
type CalendarEvent struct {
	ID           int64
	Title        string
	Start        string
	End          string
	Color        string
	State        models.ActivityState
	TypeName     string
	Coverage     float64
	PaymentState models.PaymentState
	StateClass   string
	IconClass    string
	AriaLabel    string
	Tooltip      string
}

const defaultEventColor = "#007bff"

func NewCalendarEvent(a models.Activity) CalendarEvent {
	ev := CalendarEvent{
		ID:           a.ID,
		Title:        a.Title,
		Start:        a.Date + "T" + a.StartTime,
		End:          a.Date + "T" + a.EndTime,
		Color:        defaultEventColor,
		State:        a.State,
		Coverage:     a.CoveragePercentage,
		PaymentState: a.PaymentState,
		StateClass:   eventStateClass(a.State),
	}
	if a.ActivityType != nil {
		if a.ActivityType.Color != "" {
			ev.Color = a.ActivityType.Color
		}
		ev.TypeName = a.ActivityType.Name
	}
	ev.IconClass = iconFor(ev.TypeName)
	ev.AriaLabel = fmt.Sprintf("%s, %s", a.Title, StateLabel(a.State))
	ev.Tooltip = fmt.Sprintf("%s\n%s\nStato: %s\nCopertura: %s%%",
		a.Title, ev.TypeName, a.State, formatPercent(a.CoveragePercentage))
	return ev
}

func eventStateClass(s models.ActivityState) string {
	classes := map[models.ActivityState]string{
		models.StateConfirmed: "event-confirmed",
		models.StateToConfirm: "event-pending",
		models.StateDraft:     "event-draft",
		models.StateCancelled: "event-cancelled",
		models.StateCompleted: "event-completed",
	}
	return classes[s]
}

func iconFor(typeName string) string {
	t := strings.ToLower(typeName)
	switch {
	case strings.Contains(t, "allenamento"):
		return "bi-stopwatch"
	case strings.Contains(t, "gara"):
		return "bi-trophy"
	case strings.Contains(t, "corso"):
		return "bi-mortarboard"
	default:
		return "bi-calendar-event"
	}
}
