package models

// StatsKPI aggregates the headline numbers of /api/trainings/stats.
type StatsKPI struct {
	Trainings  int     `json:"trainings"`
	TotalHours float64 `json:"total_hours"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
}

type MonthlyStat struct {
	Month     int     `json:"month"`
	Trainings int     `json:"trainings"`
	Hours     float64 `json:"hours"`
	Present   int     `json:"present"`
	Absent    int     `json:"absent"`
}

type TypeStat struct {
	Type      string  `json:"type"`
	Trainings int     `json:"trainings"`
	Hours     float64 `json:"hours"`
	Present   int     `json:"present"`
	Absent    int     `json:"absent"`
}

type StatsReport struct {
	KPI     StatsKPI      `json:"kpi"`
	Monthly []MonthlyStat `json:"monthly"`
	ByType  []TypeStat    `json:"by_type"`
}

// AthleteStatsKPI is the per-athlete variant served by
// /api/athletes/{id}/attendance_stats.
type AthleteStatsKPI struct {
	Sessions     int     `json:"sessions"`
	Present      int     `json:"present"`
	Absent       int     `json:"absent"`
	PresenceRate float64 `json:"presence_rate"`
}

type AthleteTypeStat struct {
	Type    string `json:"type"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

type SessionEntry struct {
	Date       string           `json:"date"`
	Tipo       string           `json:"tipo"`
	Categories []string         `json:"categories"`
	Status     AttendanceStatus `json:"status"`
}

type AthleteStatsReport struct {
	KPI      AthleteStatsKPI   `json:"kpi"`
	Monthly  []MonthlyStat     `json:"monthly"`
	ByType   []AthleteTypeStat `json:"by_type"`
	Sessions []SessionEntry    `json:"sessions"`
}
