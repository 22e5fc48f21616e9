package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/asdclub/club-console/internal/api"
	"github.com/asdclub/club-console/internal/models"
)

// InstructorOption is one selectable card of the assignment modal. Conflicted
// instructors render disabled.
type InstructorOption struct {
	Instructor models.Instructor
	Conflicted bool
}

func (o InstructorOption) StatusLabel() string {
	if o.Conflicted {
		return "Impegnato"
	}
	return "Disponibile"
}

// AssignmentModal scopes the instructor-assignment flow to one requirement of
// one activity. All selection state resets on close.
type AssignmentModal struct {
	client *api.Client

	activityID    int64
	requirementID int64
	options       []InstructorOption
	selectedID    int64
}

func newAssignmentModal(client *api.Client) *AssignmentModal {
	return &AssignmentModal{client: client}
}

// Open fetches the eligible instructors plus the conflict set for the
// requirement, sorted alphabetically by display name.
func (m *AssignmentModal) Open(ctx context.Context, activityID, requirementID int64) error {
	av, err := m.client.AvailableInstructors(ctx, activityID, requirementID)
	if err != nil {
		return err
	}
	conflicted := make(map[int64]bool, len(av.Conflicts))
	for _, id := range av.Conflicts {
		conflicted[id] = true
	}
	options := make([]InstructorOption, 0, len(av.Instructors))
	for _, in := range av.Instructors {
		options = append(options, InstructorOption{Instructor: in, Conflicted: conflicted[in.ID]})
	}
	sort.SliceStable(options, func(a, b int) bool {
		return options[a].Instructor.DisplayName() < options[b].Instructor.DisplayName()
	})
	m.activityID = activityID
	m.requirementID = requirementID
	m.options = options
	m.selectedID = 0
	return nil
}

func (m *AssignmentModal) Options() []InstructorOption { return m.options }

func (m *AssignmentModal) SelectedID() int64 { return m.selectedID }

// Select picks an instructor; conflicted ones cannot be selected.
func (m *AssignmentModal) Select(instructorID int64) bool {
	for _, o := range m.options {
		if o.Instructor.ID == instructorID {
			if o.Conflicted {
				return false
			}
			m.selectedID = instructorID
			return true
		}
	}
	return false
}

// CanConfirm mirrors the confirm button's disabled state.
func (m *AssignmentModal) CanConfirm() bool {
	return m.selectedID != 0 && m.requirementID != 0
}

func (m *AssignmentModal) Confirm(ctx context.Context) error {
	if !m.CanConfirm() {
		return fmt.Errorf("no instructor selected")
	}
	return m.client.AssignInstructor(ctx, m.activityID, m.selectedID, m.requirementID)
}

// Close resets the transient selection state.
func (m *AssignmentModal) Close() {
	m.activityID = 0
	m.requirementID = 0
	m.options = nil
	m.selectedID = 0
}
