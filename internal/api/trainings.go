package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/asdclub/club-console/internal/models"
)

// TrainingEvents fetches the calendar event source (/api/allenamenti).
func (c *Client) TrainingEvents(ctx context.Context) ([]models.TrainingEvent, error) {
	var out []models.TrainingEvent
	if err := c.do(ctx, "training_events", http.MethodGet, "/api/allenamenti", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Roster fetches the full attendance list of a training.
func (c *Client) Roster(ctx context.Context, trainingID int64) ([]models.AttendanceRow, error) {
	var out []models.AttendanceRow
	path := fmt.Sprintf("/trainings/%d/attendance", trainingID)
	if err := c.do(ctx, "roster", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type attendanceBody struct {
	Status models.AttendanceStatus `json:"status"`
	Reason *string                 `json:"reason"`
}

// SetAttendance sets one athlete's status on a training. Reason is optional
// free text.
func (c *Client) SetAttendance(ctx context.Context, trainingID, athleteID int64, status models.AttendanceStatus, reason *string) (*models.AttendanceResult, error) {
	path := fmt.Sprintf("/trainings/%d/attendance/%d", trainingID, athleteID)
	var out models.AttendanceResult
	if err := c.do(ctx, "set_attendance", http.MethodPost, path, nil, attendanceBody{Status: status, Reason: reason}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type AttendanceItem struct {
	AthleteID int64                   `json:"athlete_id"`
	Status    models.AttendanceStatus `json:"status"`
}

type bulkBody struct {
	Items  []AttendanceItem `json:"items"`
	Reason *string          `json:"reason"`
}

// BulkResult lists the per-item outcomes of a bulk update.
type BulkResult struct {
	Updated []models.AttendanceRow `json:"updated"`
}

// BulkAttendance applies one status per item in a single call. The empty-list
// guard belongs to the caller, not here.
func (c *Client) BulkAttendance(ctx context.Context, trainingID int64, items []AttendanceItem, reason *string) (*BulkResult, error) {
	path := fmt.Sprintf("/trainings/%d/attendance/bulk", trainingID)
	var out BulkResult
	if err := c.do(ctx, "bulk_attendance", http.MethodPost, path, nil, bulkBody{Items: items, Reason: reason}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleAttendance is the self-service variant: the server infers the athlete
// from the session and enforces its own change limit.
func (c *Client) ToggleAttendance(ctx context.Context, trainingID int64, newStatus models.AttendanceStatus) (*models.AttendanceResult, error) {
	path := fmt.Sprintf("/trainings/%d/attendance/toggle", trainingID)
	body := map[string]models.AttendanceStatus{"new_status": newStatus}
	var out models.AttendanceResult
	if err := c.do(ctx, "toggle_attendance", http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleTrainingCategory adds the category when absent, removes it when
// present.
func (c *Client) ToggleTrainingCategory(ctx context.Context, trainingID int64, category string) error {
	path := fmt.Sprintf("/trainings/%d/categories/%s", trainingID, url.PathEscape(category))
	return c.do(ctx, "toggle_category", http.MethodPost, path, nil, nil, nil)
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.do(ctx, "list_categories", http.MethodGet, "/api/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListAthletes(ctx context.Context) ([]models.Athlete, error) {
	var out []models.Athlete
	if err := c.do(ctx, "list_athletes", http.MethodGet, "/api/athletes", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
