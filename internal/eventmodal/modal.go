// Package eventmodal models the event detail dialog: one open dialog at a
// time, populated from the clicked calendar card, with role-dependent
// attendance and category controls.
package eventmodal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/asdclub/club-console/internal/api"
	"github.com/asdclub/club-console/internal/attendance"
	"github.com/asdclub/club-console/internal/calendar"
	"github.com/asdclub/club-console/internal/models"
)

// Role is the viewer's capability, decided by the caller at open time.
type Role int

const (
	RoleViewer Role = iota
	RoleAthlete
	RoleStaff
)

type State int

const (
	Closed State = iota
	OpenReadonly
	OpenSelfService
	OpenStaff
)

// ErrLocked is returned when a self-service change is attempted inside the
// pre-training lock window. No API call is made.
var ErrLocked = errors.New("self-service attendance is locked before training start")

// PatchEventFn lets the owning calendar patch its cached event metadata after
// a category save, avoiding a full re-fetch.
type PatchEventFn func(trainingID int64, catList []string, summary string)

type Modal struct {
	client *api.Client
	ctrl   *attendance.Controller
	log    *zap.SugaredLogger
	now    func() time.Time

	// PatchEvent is optional; set by the page wiring.
	PatchEvent PatchEventFn

	state      State
	card       calendar.EventCard
	trainingID int64

	selfStatus models.AttendanceStatus
	selfLocked bool

	roster    []models.AttendanceRow
	checked   map[int64]bool
	selectAll bool

	originalCategories []string
	selectedCategories []string

	// page-lifetime caches, loaded once and never invalidated
	athletes         []models.Athlete
	athletesLoaded   bool
	allCategories    []models.Category
	categoriesLoaded bool
}

type Option func(*Modal)

// WithClock overrides the lock-window clock.
func WithClock(now func() time.Time) Option {
	return func(m *Modal) { m.now = now }
}

func New(client *api.Client, ctrl *attendance.Controller, log *zap.SugaredLogger, opts ...Option) *Modal {
	m := &Modal{
		client:  client,
		ctrl:    ctrl,
		log:     log,
		now:     time.Now,
		checked: make(map[int64]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Modal) State() State              { return m.state }
func (m *Modal) Card() calendar.EventCard  { return m.card }
func (m *Modal) Roster() []models.AttendanceRow {
	return m.roster
}

// Open populates static fields from the card already in memory and, for the
// staff role, fetches the live roster and the category list.
func (m *Modal) Open(ctx context.Context, card calendar.EventCard, role Role) error {
	m.reset()
	m.card = card

	if card.Type != calendar.TypeTraining {
		m.state = OpenReadonly
		return nil
	}

	switch role {
	case RoleViewer:
		m.state = OpenReadonly
		return nil
	case RoleAthlete:
		m.state = OpenSelfService
		m.trainingID = card.ID
		m.selfStatus = card.Status
		m.selfLocked = !attendance.CanSelfToggle(m.now(), card.Start)
		return nil
	case RoleStaff:
		m.state = OpenStaff
		m.trainingID = card.ID
		if err := m.reloadRoster(ctx); err != nil {
			return err
		}
		if err := m.loadCategories(ctx); err != nil {
			return err
		}
		m.originalCategories = append([]string(nil), card.CatList...)
		m.selectedCategories = append([]string(nil), card.CatList...)
		return nil
	default:
		return fmt.Errorf("unknown role %d", role)
	}
}

// Close drops all transient selection state. The athlete and category caches
// survive for the page lifetime.
func (m *Modal) Close() {
	m.reset()
}

func (m *Modal) reset() {
	m.state = Closed
	m.card = calendar.EventCard{}
	m.trainingID = 0
	m.selfStatus = ""
	m.selfLocked = false
	m.roster = nil
	m.checked = make(map[int64]bool)
	m.selectAll = false
	m.originalCategories = nil
	m.selectedCategories = nil
}

// --- self-service sub-flow ---

// SelfButtons is the two-button present/absent control. Present and absent are
// the only two stable active states; an undecided status leaves both neutral.
type SelfButtons struct {
	PresentClass string
	AbsentClass  string
	Disabled     bool
}

func (m *Modal) SelfButtons() SelfButtons {
	b := SelfButtons{Disabled: m.selfLocked}
	switch m.selfStatus {
	case models.Present:
		b.PresentClass = "btn-success active"
		b.AbsentClass = "btn-outline-danger"
	case models.Absent:
		b.AbsentClass = "btn-danger active"
		b.PresentClass = "btn-outline-success"
	default:
		b.PresentClass = "btn-outline-success"
		b.AbsentClass = "btn-outline-danger"
	}
	return b
}

func (m *Modal) SelfStatus() models.AttendanceStatus { return m.selfStatus }
func (m *Modal) SelfLocked() bool                    { return m.selfLocked }

// MarkSelf flips the viewer's own status. The button state updates
// synchronously on success; on failure it is left unchanged.
func (m *Modal) MarkSelf(ctx context.Context, status models.AttendanceStatus) error {
	if m.state != OpenSelfService {
		return fmt.Errorf("self-service controls not active")
	}
	if m.selfLocked {
		return ErrLocked
	}
	if _, err := m.ctrl.Toggle(ctx, m.trainingID, status); err != nil {
		return err
	}
	m.selfStatus = status
	m.card.Status = status
	return nil
}

// --- staff sub-flow ---

func (m *Modal) reloadRoster(ctx context.Context) error {
	rows, err := m.client.Roster(ctx, m.trainingID)
	if err != nil {
		return err
	}
	m.roster = rows
	m.checked = make(map[int64]bool)
	m.selectAll = false
	return nil
}

func (m *Modal) Check(athleteID int64, on bool) {
	if on {
		m.checked[athleteID] = true
	} else {
		delete(m.checked, athleteID)
	}
}

func (m *Modal) SelectAll(on bool) {
	m.selectAll = on
	for _, r := range m.roster {
		m.Check(r.AthleteID, on)
	}
}

func (m *Modal) SelectAllChecked() bool { return m.selectAll }

func (m *Modal) CheckedCount() int { return len(m.checked) }

// BulkMark applies one status to all checked rows in a single call, then
// re-fetches the roster so the displayed state matches the server. An empty
// selection is a no-op.
func (m *Modal) BulkMark(ctx context.Context, status models.AttendanceStatus) error {
	if m.state != OpenStaff {
		return fmt.Errorf("attendance table not active")
	}
	var items []api.AttendanceItem
	for _, r := range m.roster {
		if m.checked[r.AthleteID] {
			items = append(items, api.AttendanceItem{AthleteID: r.AthleteID, Status: status})
		}
	}
	if len(items) == 0 {
		return nil
	}
	if _, err := m.ctrl.Bulk(ctx, m.trainingID, items, nil); err != nil {
		return err
	}
	return m.reloadRoster(ctx)
}

// AddAthlete puts an athlete outside the roster onto it with the placeholder
// "maybe" status, then reloads.
func (m *Modal) AddAthlete(ctx context.Context, athleteID int64) error {
	if m.state != OpenStaff {
		return fmt.Errorf("attendance table not active")
	}
	if _, err := m.ctrl.Set(ctx, m.trainingID, athleteID, models.Maybe, nil); err != nil {
		return err
	}
	return m.reloadRoster(ctx)
}

// AthleteOptions returns the add-athlete dropdown entries, fetched once per
// page lifetime.
func (m *Modal) AthleteOptions(ctx context.Context) ([]models.Athlete, error) {
	if !m.athletesLoaded {
		list, err := m.client.ListAthletes(ctx)
		if err != nil {
			return nil, err
		}
		m.athletes = list
		m.athletesLoaded = true
	}
	return m.athletes, nil
}

// --- category editing ---

func (m *Modal) loadCategories(ctx context.Context) error {
	if m.categoriesLoaded {
		return nil
	}
	list, err := m.client.ListCategories(ctx)
	if err != nil {
		return err
	}
	m.allCategories = list
	m.categoriesLoaded = true
	return nil
}

func (m *Modal) SelectedCategories() []string { return m.selectedCategories }
func (m *Modal) OriginalCategories() []string { return m.originalCategories }

// ToggleCategory flips a badge in the working set. No network call per click;
// the diff is settled on save.
func (m *Modal) ToggleCategory(name string) {
	for i, c := range m.selectedCategories {
		if c == name {
			m.selectedCategories = append(m.selectedCategories[:i], m.selectedCategories[i+1:]...)
			return
		}
	}
	m.selectedCategories = append(m.selectedCategories, name)
}

// SaveCategories reconciles the working set against the server, one toggle
// per differing category, then patches the cached event metadata.
func (m *Modal) SaveCategories(ctx context.Context) error {
	if m.state != OpenStaff {
		return fmt.Errorf("category editor not active")
	}
	if err := m.ctrl.ReconcileCategories(ctx, m.trainingID, m.originalCategories, m.selectedCategories); err != nil {
		return err
	}
	m.originalCategories = append([]string(nil), m.selectedCategories...)
	summary := joinOrDash(m.selectedCategories)
	m.card.CatList = append([]string(nil), m.selectedCategories...)
	m.card.Categories = summary
	if m.PatchEvent != nil {
		m.PatchEvent(m.trainingID, m.card.CatList, summary)
	}
	return nil
}

// Badge is one clickable category pill.
type Badge struct {
	Name   string
	Active bool
}

// BadgeGroup keeps the fixed display order of the age groups, with any other
// group appended after.
type BadgeGroup struct {
	Group  string
	Badges []Badge
}

var groupOrder = []string{"Over 14", "Master", "Under 14"}

func (m *Modal) CategoryBadges() []BadgeGroup {
	selected := make(map[string]bool, len(m.selectedCategories))
	for _, c := range m.selectedCategories {
		selected[c] = true
	}
	byGroup := make(map[string][]Badge)
	var extra []string
	for _, c := range m.allCategories {
		g := c.Group
		if _, ok := byGroup[g]; !ok && !isKnownGroup(g) {
			extra = append(extra, g)
		}
		byGroup[g] = append(byGroup[g], Badge{Name: c.Name, Active: selected[c.Name]})
	}
	var out []BadgeGroup
	for _, g := range append(append([]string(nil), groupOrder...), extra...) {
		if badges := byGroup[g]; len(badges) > 0 {
			out = append(out, BadgeGroup{Group: g, Badges: badges})
		}
	}
	return out
}

func isKnownGroup(g string) bool {
	for _, k := range groupOrder {
		if k == g {
			return true
		}
	}
	return false
}

func joinOrDash(list []string) string {
	if len(list) == 0 {
		return "-"
	}
	out := list[0]
	for _, s := range list[1:] {
		out += ", " + s
	}
	return out
}
