// Package stats drives the statistics panels: aggregated KPIs and
// chart-ready breakdowns fetched from the server. The server is the sole
// source of truth; nothing is recomputed locally.
package stats

import (
	"context"
	"fmt"
	"strconv"

	"github.com/asdclub/club-console/internal/api"
	"github.com/asdclub/club-console/internal/models"
)

// StackedBar is the monthly present/absent chart model.
type StackedBar struct {
	Labels  []string
	Present []int
	Absent  []int
}

// Doughnut is the categorical proportion chart model.
type Doughnut struct {
	Labels []string
	Data   []float64
}

// KPIView is the headline strip, formatted for display.
type KPIView struct {
	Trainings string
	Hours     string
	Present   string
	Absent    string
}

// Panel is the trainings statistics dashboard. Any filter change triggers a
// full re-fetch.
type Panel struct {
	client *api.Client
	filter api.StatsFilter
	report *models.StatsReport
}

func NewPanel(client *api.Client, filter api.StatsFilter) *Panel {
	return &Panel{client: client, filter: filter}
}

func (p *Panel) Filter() api.StatsFilter { return p.filter }

func (p *Panel) SetFilter(ctx context.Context, f api.StatsFilter) error {
	p.filter = f
	return p.Reload(ctx)
}

func (p *Panel) Reload(ctx context.Context) error {
	report, err := p.client.TrainingsStats(ctx, p.filter)
	if err != nil {
		return err
	}
	p.report = report
	return nil
}

func (p *Panel) Report() *models.StatsReport { return p.report }

func (p *Panel) KPI() KPIView {
	if p.report == nil {
		return KPIView{}
	}
	k := p.report.KPI
	return KPIView{
		Trainings: strconv.Itoa(k.Trainings),
		Hours:     fmt.Sprintf("%.1f", k.TotalHours),
		Present:   strconv.Itoa(k.Present),
		Absent:    strconv.Itoa(k.Absent),
	}
}

// MonthlyChart builds the stacked present/absent bars.
func (p *Panel) MonthlyChart() StackedBar {
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

// ByTypeCharts builds the two proportion charts: trainings count and hours
// per activity type.
func (p *Panel) ByTypeCharts() (trainings, hours Doughnut) {
	if p.report == nil {
		return trainings, hours
	}
	for _, t := range p.report.ByType {
		trainings.Labels = append(trainings.Labels, t.Type)
		trainings.Data = append(trainings.Data, float64(t.Trainings))
		hours.Labels = append(hours.Labels, t.Type)
		hours.Data = append(hours.Data, t.Hours)
	}
	return trainings, hours
}

// CSVURL is the export link for the current filter combination.
func (p *Panel) CSVURL() string {
	return p.client.StatsCSVURL(p.filter)
}
