package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/asdclub/club-console/internal/models"
)

// ListActivities fetches /api/attivita with the given query (date range,
// type, state...). Coverage-bucket narrowing happens client-side, not here.
func (c *Client) ListActivities(ctx context.Context, query url.Values) ([]models.Activity, error) {
	var out []models.Activity
	if err := c.do(ctx, "list_activities", http.MethodGet, "/api/attivita", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetActivity(ctx context.Context, id int64) (*models.Activity, error) {
	var out models.Activity
	path := fmt.Sprintf("/api/attivita/%d", id)
	if err := c.do(ctx, "get_activity", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SelfAssign claims an open slot on the activity for the session's viewer.
func (c *Client) SelfAssign(ctx context.Context, activityID int64) error {
	path := fmt.Sprintf("/api/attivita/%d/self-assign", activityID)
	body := map[string]int64{"activity_id": activityID}
	return c.post(ctx, "self_assign", path, body)
}

// InstructorAvailability pairs the eligible instructors with the ids already
// booked elsewhere at a conflicting time.
type InstructorAvailability struct {
	Instructors []models.Instructor `json:"instructors"`
	Conflicts   []int64             `json:"conflicts"`
}

func (c *Client) AvailableInstructors(ctx context.Context, activityID, requirementID int64) (*InstructorAvailability, error) {
	path := fmt.Sprintf("/api/attivita/%d/available-instructors", activityID)
	q := url.Values{"requirement_id": {strconv.FormatInt(requirementID, 10)}}
	var out InstructorAvailability
	if err := c.do(ctx, "available_instructors", http.MethodGet, path, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AssignInstructor(ctx context.Context, activityID, instructorID, requirementID int64) error {
	path := fmt.Sprintf("/api/attivita/%d/assign-instructor", activityID)
	body := map[string]int64{
		"instructor_id":  instructorID,
		"requirement_id": requirementID,
	}
	return c.post(ctx, "assign_instructor", path, body)
}

func (c *Client) SavePaymentNotes(ctx context.Context, activityID int64, notes string) error {
	path := fmt.Sprintf("/api/attivita/%d/payment-notes", activityID)
	return c.post(ctx, "save_payment_notes", path, map[string]string{"notes": notes})
}
