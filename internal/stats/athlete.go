package stats

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/asdclub/club-console/internal/api"
	"github.com/asdclub/club-console/internal/models"
)

// AthleteKPIView formats the per-athlete headline numbers; the presence rate
// renders as a percentage with one decimal.
type AthleteKPIView struct {
	Sessions string
	Present  string
	Absent   string
	Rate     string
}

// SessionRow is one line of the raw session table.
type SessionRow struct {
	Date       string
	Tipo       string
	Categories string
	Status     string
}

// AthletePanel is the attendance statistics section of the athlete detail
// page.
type AthletePanel struct {
	client    *api.Client
	athleteID int64
	filter    api.AthleteStatsFilter
	report    *models.AthleteStatsReport
}

func NewAthletePanel(client *api.Client, athleteID int64, filter api.AthleteStatsFilter) *AthletePanel {
	return &AthletePanel{client: client, athleteID: athleteID, filter: filter}
}

func (p *AthletePanel) SetFilter(ctx context.Context, f api.AthleteStatsFilter) error {
	p.filter = f
	return p.Reload(ctx)
}

func (p *AthletePanel) Reload(ctx context.Context) error {
	report, err := p.client.AthleteAttendanceStats(ctx, p.athleteID, p.filter)
	if err != nil {
		return err
	}
	p.report = report
	return nil
}

func (p *AthletePanel) Report() *models.AthleteStatsReport { return p.report }

func (p *AthletePanel) KPI() AthleteKPIView {
	if p.report == nil {
		return AthleteKPIView{}
	}
	k := p.report.KPI
	return AthleteKPIView{
		Sessions: strconv.Itoa(k.Sessions),
		Present:  strconv.Itoa(k.Present),
		Absent:   strconv.Itoa(k.Absent),
		Rate:     fmt.Sprintf("%.1f%%", k.PresenceRate*100),
	}
}

func (p *AthletePanel) MonthlyChart() StackedBar {
	var chart StackedBar
	if p.report == nil {
		return chart
	}
	for _, m := range p.report.Monthly {
		chart.Labels = append(chart.Labels, strconv.Itoa(m.Month))
		chart.Present = append(chart.Present, m.Present)
		chart.Absent = append(chart.Absent, m.Absent)
	}
	return chart
}

// ByTypeChart plots total sessions (present plus absent) per type.
func (p *AthletePanel) ByTypeChart() Doughnut {
	var chart Doughnut
	if p.report == nil {
		return chart
	}
	for _, t := range p.report.ByType {
		chart.Labels = append(chart.Labels, t.Type)
		chart.Data = append(chart.Data, float64(t.Present+t.Absent))
	}
	return chart
}

func (p *AthletePanel) SessionRows() []SessionRow {
	if p.report == nil {
		return nil
	}
	rows := make([]SessionRow, 0, len(p.report.Sessions))
	for _, s := range p.report.Sessions {
		rows = append(rows, SessionRow{
			Date:       s.Date,
			Tipo:       s.Tipo,
			Categories: strings.Join(s.Categories, ","),
			Status:     models.StatusLabel(s.Status),
		})
	}
	return rows
}

func (p *AthletePanel) CSVURL() string {
	return p.client.AthleteAttendanceCSVURL(p.athleteID, p.filter)
}
