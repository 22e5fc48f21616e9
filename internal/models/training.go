package models

import "time"

type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	// Maybe is both a genuine third state and the default for athletes
	// added to a roster without an explicit choice.
	Maybe AttendanceStatus = "maybe"
)

// StatusLabel returns the Italian display label used across the UI.
func StatusLabel(s AttendanceStatus) string {
	switch s {
	case Present:
		return "Presente"
	case Absent:
		return "Assente"
	case Maybe:
		return "Forse"
	default:
		return string(s)
	}
}

// TrainingEvent is one entry of the /api/allenamenti event source.
// Extended fields come pre-joined from the server; the client only reads them.
type TrainingEvent struct {
	ID    int64     `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Orario      string           `json:"orario"`     // display time span, e.g. "18:00 - 20:00"
	Categories  string           `json:"categories"` // joined summary
	CatList     []string         `json:"catlist"`
	Coaches     string           `json:"coaches"`
	IsRecurrent string           `json:"is_recurrent"`
	Status      AttendanceStatus `json:"status"` // viewer's own status, athlete views only
}

// AttendanceRow is one roster line of GET /trainings/{id}/attendance.
type AttendanceRow struct {
	AthleteID   int64            `json:"athlete_id"`
	AthleteName string           `json:"athlete_name"`
	Status      AttendanceStatus `json:"status"`
}

// AttendanceResult is the body of the attendance mutation endpoints.
// ChangeCount tracks how many times the athlete flipped their own status;
// the server rejects flips past its limit.
type AttendanceResult struct {
	Status      AttendanceStatus `json:"status"`
	ChangeCount int              `json:"change_count"`
}

type Category struct {
	Name  string `json:"name"`
	Group string `json:"group"`
}

type Athlete struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
