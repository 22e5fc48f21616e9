package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/asdclub/club-console/internal/api"
	"github.com/asdclub/club-console/internal/models"
	"github.com/asdclub/club-console/internal/session"
)

type ViewMode string

const (
	ViewCalendar ViewMode = "calendar"
	ViewList     ViewMode = "list"
)

const listLimit = "100"

// Board drives the activities dashboard: dual calendar/list view, the filter
// set, the open activity detail and the instructor-assignment flow.
type Board struct {
	client *api.Client
	store  *session.Store
	log    *zap.SugaredLogger

	view           ViewMode
	calendarInited bool
	filters        FilterSet

	events []CalendarEvent
	groups []DateGroup

	current    *models.Activity
	Assignment *AssignmentModal
}

func NewBoard(client *api.Client, store *session.Store, log *zap.SugaredLogger) *Board {
	b := &Board{
		client:  client,
		store:   store,
		log:     log,
		view:    ViewCalendar,
		filters: FilterSet{},
	}
	b.Assignment = newAssignmentModal(client)
	b.loadSavedFilters()
	return b
}

func (b *Board) View() ViewMode       { return b.view }
func (b *Board) Filters() FilterSet   { return b.filters }
func (b *Board) Events() []CalendarEvent { return b.events }
func (b *Board) Groups() []DateGroup  { return b.groups }
func (b *Board) Current() *models.Activity {
	return b.current
}

// SwitchView makes exactly one of calendar/list active. The calendar is
// initialized lazily on first use; the list always re-fetches on switch.
func (b *Board) SwitchView(ctx context.Context, mode ViewMode, from, to time.Time) error {
	b.view = mode
	if mode == ViewCalendar {
		if !b.calendarInited {
			b.calendarInited = true
			return b.RefetchEvents(ctx, from, to)
		}
		return nil
	}
	return b.LoadList(ctx)
}

// RefetchEvents reloads the calendar event source for a date range, applying
// the server-side filters on the wire and the coverage bucket locally.
func (b *Board) RefetchEvents(ctx context.Context, from, to time.Time) error {
	q := b.filters.Query()
	q.Set("date_from", from.Format("2006-01-02"))
	q.Set("date_to", to.Format("2006-01-02"))
	activities, err := b.client.ListActivities(ctx, q)
	if err != nil {
		b.log.Warnw("load activities failed", "err", err)
		return err
	}
	activities = FilterByCoverage(activities, b.filters.Coverage())
	events := make([]CalendarEvent, 0, len(activities))
	for _, a := range activities {
		events = append(events, NewCalendarEvent(a))
	}
	b.events = events
	return nil
}

// LoadList fetches and groups the list view.
func (b *Board) LoadList(ctx context.Context) error {
	q := b.filters.Query()
	q.Set("limit", listLimit)
	activities, err := b.client.ListActivities(ctx, q)
	if err != nil {
		b.log.Warnw("load list failed", "err", err)
		return err
	}
	activities = FilterByCoverage(activities, b.filters.Coverage())
	b.groups = GroupByDate(activities, true)
	return nil
}

func (b *Board) refreshActiveView(ctx context.Context, from, to time.Time) error {
	if b.view == ViewCalendar {
		if !b.calendarInited {
			return nil
		}
		return b.RefetchEvents(ctx, from, to)
	}
	return b.LoadList(ctx)
}

// ApplyFilters replaces the filter set wholesale (empty fields dropped),
// refreshes the active view and persists the set for the session.
func (b *Board) ApplyFilters(ctx context.Context, form map[string]string, from, to time.Time) error {
	b.filters = NewFilterSet(form)
	if err := b.refreshActiveView(ctx, from, to); err != nil {
		return err
	}
	return b.saveFilters(ctx)
}

// ClearFilters is a true identity reset: the subsequent view matches an
// empty filter set.
func (b *Board) ClearFilters(ctx context.Context, from, to time.Time) error {
	b.filters = FilterSet{}
	if err := b.refreshActiveView(ctx, from, to); err != nil {
		return err
	}
	if err := b.store.Delete(ctx, session.FiltersKey); err != nil {
		b.log.Warnw("clear saved filters failed", "err", err)
	}
	return nil
}

func (b *Board) saveFilters(ctx context.Context) error {
	raw, err := json.Marshal(b.filters)
	if err != nil {
		return err
	}
	if err := b.store.Put(ctx, session.FiltersKey, string(raw)); err != nil {
		b.log.Warnw("save filters failed", "err", err)
	}
	return nil
}

// loadSavedFilters restores the session's filter set; unparsable saved state
// is discarded, never fatal.
func (b *Board) loadSavedFilters() {
	ctx := context.Background()
	raw, ok, err := b.store.Get(ctx, session.FiltersKey)
	if err != nil || !ok {
		return
	}
	var saved FilterSet
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		b.log.Warnw("discarding malformed saved filters", "err", err)
		_ = b.store.Delete(ctx, session.FiltersKey)
		return
	}
	b.filters = NewFilterSet(saved)
}

// ShowActivity opens the detail modal state: fetches the full activity with
// requirements and assignments.
func (b *Board) ShowActivity(ctx context.Context, id int64) error {
	a, err := b.client.GetActivity(ctx, id)
	if err != nil {
		b.log.Warnw("load activity detail failed", "activity", id, "err", err)
		return err
	}
	b.current = a
	return nil
}

// CloseActivity resets the detail state when the modal closes.
func (b *Board) CloseActivity() {
	b.current = nil
	b.Assignment.Close()
}

// SelfAssign claims an open slot on the current activity, then re-fetches the
// detail and the calendar event source.
func (b *Board) SelfAssign(ctx context.Context, from, to time.Time) error {
	if b.current == nil {
		return nil
	}
	id := b.current.ID
	if err := b.client.SelfAssign(ctx, id); err != nil {
		return err
	}
	if err := b.ShowActivity(ctx, id); err != nil {
		return err
	}
	if b.calendarInited {
		return b.RefetchEvents(ctx, from, to)
	}
	return nil
}

// ConfirmAssignment posts the chosen (instructor, requirement) pair, then
// refreshes the detail and the calendar.
func (b *Board) ConfirmAssignment(ctx context.Context, from, to time.Time) error {
	if b.current == nil {
		return nil
	}
	id := b.current.ID
	if err := b.Assignment.Confirm(ctx); err != nil {
		return err
	}
	if err := b.ShowActivity(ctx, id); err != nil {
		return err
	}
	if b.calendarInited {
		return b.RefetchEvents(ctx, from, to)
	}
	return nil
}

// SavePaymentNotes writes the free-text notes of the current activity.
func (b *Board) SavePaymentNotes(ctx context.Context, notes string) error {
	if b.current == nil {
		return nil
	}
	if err := b.client.SavePaymentNotes(ctx, b.current.ID, notes); err != nil {
		return err
	}
	b.current.PaymentNotes = notes
	return nil
}

// ClearPaymentNotes empties the local notes field; persisting the empty value
// still goes through SavePaymentNotes.
func (b *Board) ClearPaymentNotes() {
	if b.current != nil {
		b.current.PaymentNotes = ""
	}
}
