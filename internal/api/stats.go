package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/asdclub/club-console/internal/models"
)

// StatsFilter selects the slice of trainings to aggregate. Zero Month means
// the whole year; Categorie and Tipi are multi-valued.
type StatsFilter struct {
	Year      int
	Month     int
	Categorie []string
	Tipi      []string
}

func (f StatsFilter) Query() url.Values {
	q := url.Values{"year": {strconv.Itoa(f.Year)}}
	if f.Month > 0 {
		q.Set("month", strconv.Itoa(f.Month))
	}
	for _, c := range f.Categorie {
		q.Add("categoria", c)
	}
	for _, t := range f.Tipi {
		q.Add("tipo", t)
	}
	return q
}

func (c *Client) TrainingsStats(ctx context.Context, f StatsFilter) (*models.StatsReport, error) {
	var out models.StatsReport
	if err := c.do(ctx, "trainings_stats", http.MethodGet, "/api/trainings/stats", f.Query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StatsCSVURL is the export link: the same query redirected to the
// .csv-suffixed endpoint.
func (c *Client) StatsCSVURL(f StatsFilter) string {
	return c.baseURL + "/api/trainings/stats.csv?" + f.Query().Encode()
}

// AthleteStatsFilter narrows the per-athlete attendance stats.
type AthleteStatsFilter struct {
	Year  int
	Month int
	Tipi  []string
}

func (f AthleteStatsFilter) Query() url.Values {
	q := url.Values{"year": {strconv.Itoa(f.Year)}}
	if f.Month > 0 {
		q.Set("month", strconv.Itoa(f.Month))
	}
	for _, t := range f.Tipi {
		q.Add("tipo", t)
	}
	return q
}

func (c *Client) AthleteAttendanceStats(ctx context.Context, athleteID int64, f AthleteStatsFilter) (*models.AthleteStatsReport, error) {
	path := fmt.Sprintf("/api/athletes/%d/attendance_stats", athleteID)
	var out models.AthleteStatsReport
	if err := c.do(ctx, "athlete_attendance_stats", http.MethodGet, path, f.Query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AthleteAttendanceCSVURL(athleteID int64, f AthleteStatsFilter) string {
	return c.baseURL + fmt.Sprintf("/api/athletes/%d/attendance.csv?", athleteID) + f.Query().Encode()
}

// SaveMeasurement posts an athlete measurement form. Empty fields are dropped
// before the call, matching the form behavior.
func (c *Client) SaveMeasurement(ctx context.Context, athleteID int64, fields map[string]string) error {
	payload := make(map[string]string, len(fields))
	for k, v := range fields {
		if v != "" {
			payload[k] = v
		}
	}
	path := fmt.Sprintf("/risorse/athletes/%d/measurements", athleteID)
	return c.do(ctx, "save_measurement", http.MethodPost, path, nil, payload, nil)
}
