package attendance

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/asdclub/club-console/internal/api"
	"github.com/asdclub/club-console/internal/models"
)

// SelfToggleLock is the window before a training's start during which the
// self-service controls are disabled. UX guard only: the server is the
// authority.
const SelfToggleLock = 3 * time.Hour

// CanSelfToggle reports whether the athlete may still flip their own status.
func CanSelfToggle(now, start time.Time) bool {
	return now.Before(start.Add(-SelfToggleLock))
}

// Controller owns the attendance mutations. No optimistic updates: callers
// re-fetch to observe effects, no retry on failure.
type Controller struct {
	api *api.Client
	log *zap.SugaredLogger
}

func New(client *api.Client, log *zap.SugaredLogger) *Controller {
	return &Controller{api: client, log: log}
}

func (c *Controller) Set(ctx context.Context, trainingID, athleteID int64, status models.AttendanceStatus, reason *string) (*models.AttendanceResult, error) {
	res, err := c.api.SetAttendance(ctx, trainingID, athleteID, status, reason)
	if err != nil {
		c.log.Warnw("set attendance failed", "training", trainingID, "athlete", athleteID, "err", err)
		return nil, err
	}
	return res, nil
}

// Bulk applies a list of (athlete, status) pairs in one call. The caller
// guards the empty list.
func (c *Controller) Bulk(ctx context.Context, trainingID int64, items []api.AttendanceItem, reason *string) (*api.BulkResult, error) {
	res, err := c.api.BulkAttendance(ctx, trainingID, items, reason)
	if err != nil {
		c.log.Warnw("bulk attendance failed", "training", trainingID, "items", len(items), "err", err)
		return nil, err
	}
	return res, nil
}

// Toggle is the self-service flip; the server infers the athlete from the
// session identity.
func (c *Controller) Toggle(ctx context.Context, trainingID int64, newStatus models.AttendanceStatus) (*models.AttendanceResult, error) {
	res, err := c.api.ToggleAttendance(ctx, trainingID, newStatus)
	if err != nil {
		c.log.Warnw("self toggle failed", "training", trainingID, "status", newStatus, "err", err)
		return nil, err
	}
	return res, nil
}

func (c *Controller) ToggleCategory(ctx context.Context, trainingID int64, category string) error {
	if err := c.api.ToggleTrainingCategory(ctx, trainingID, category); err != nil {
		c.log.Warnw("toggle category failed", "training", trainingID, "category", category, "err", err)
		return err
	}
	return nil
}

// CategoryDiff computes the pending edit: adds are selected minus original,
// removes are original minus selected, each keeping its input order.
func CategoryDiff(original, selected []string) (toAdd, toRemove []string) {
	in := func(set []string, s string) bool {
		for _, v := range set {
			if v == s {
				return true
			}
		}
		return false
	}
	for _, s := range selected {
		if !in(original, s) {
			toAdd = append(toAdd, s)
		}
	}
	for _, o := range original {
		if !in(selected, o) {
			toRemove = append(toRemove, o)
		}
	}
	return toAdd, toRemove
}

// ReconcileCategories issues exactly one toggle per symmetric-difference
// element and none when the sets already match. The first failure aborts the
// remainder.
func (c *Controller) ReconcileCategories(ctx context.Context, trainingID int64, original, selected []string) error {
	toAdd, toRemove := CategoryDiff(original, selected)
	for _, cat := range append(toAdd, toRemove...) {
		if err := c.ToggleCategory(ctx, trainingID, cat); err != nil {
			return err
		}
	}
	return nil
}
