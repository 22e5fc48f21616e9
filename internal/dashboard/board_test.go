package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/asdclub/club-console/internal/api"
	"github.com/asdclub/club-console/internal/models"
	"github.com/asdclub/club-console/internal/session"
)

type activityBackend struct {
	mu sync.Mutex

	activities []models.Activity
	detail     models.Activity

	listCalls    int
	lastQuery    url.Values
	selfAssigns  int
	assignBodies []map[string]int64
	notesBodies  []map[string]string
}

func (b *activityBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/attivita", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.listCalls++
		b.lastQuery = r.URL.Query()
		list := b.activities
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(list)
	})
	mux.HandleFunc("GET /api/attivita/5", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		detail := b.detail
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(detail)
	})
	mux.HandleFunc("POST /api/attivita/5/self-assign", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.selfAssigns++
		b.mu.Unlock()
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("GET /api/attivita/5/available-instructors", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.InstructorAvailability{
			Instructors: []models.Instructor{
				{ID: 2, FirstName: "Mario", LastName: "Verdi"},
				{ID: 1, FirstName: "Anna", LastName: "Bianchi"},
				{ID: 3, FirstName: "Luca", LastName: "Rossi"},
			},
			Conflicts: []int64{3},
		})
	})
	mux.HandleFunc("POST /api/attivita/5/assign-instructor", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]int64
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.mu.Lock()
		b.assignBodies = append(b.assignBodies, body)
		b.mu.Unlock()
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("POST /api/attivita/5/payment-notes", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.mu.Lock()
		b.notesBodies = append(b.notesBodies, body)
		b.mu.Unlock()
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	return mux
}

func boardFixture() []models.Activity {
	return []models.Activity{
		{ID: 5, Title: "Gara", Date: "2026-09-05", StartTime: "08:00", EndTime: "17:00", CoveragePercentage: 100},
		{ID: 6, Title: "Corso", Date: "2026-09-06", StartTime: "10:00", EndTime: "12:00", CoveragePercentage: 40},
	}
}

func newBoard(t *testing.T, b *activityBackend) (*Board, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)
	store, err := session.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return NewBoard(api.NewClient(srv.URL), store, zap.NewNop().Sugar()), store
}

func window() (time.Time, time.Time) {
	from := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func TestSwitchViewInitializesCalendarLazily(t *testing.T) {
	b := &activityBackend{activities: boardFixture()}
	board, _ := newBoard(t, b)
	ctx := context.Background()
	from, to := window()

	if err := board.SwitchView(ctx, ViewCalendar, from, to); err != nil {
		t.Fatal(err)
	}
	if b.listCalls != 1 {
		t.Fatalf("list calls = %d, want 1", b.listCalls)
	}
	if b.lastQuery.Get("date_from") != "2026-09-01" || b.lastQuery.Get("date_to") != "2026-10-01" {
		t.Fatalf("query = %v", b.lastQuery)
	}
	if len(board.Events()) != 2 {
		t.Fatalf("events = %d", len(board.Events()))
	}

	// second switch to the already-initialized calendar: no fetch
	if err := board.SwitchView(ctx, ViewCalendar, from, to); err != nil {
		t.Fatal(err)
	}
	if b.listCalls != 1 {
		t.Fatalf("list calls = %d after re-switch", b.listCalls)
	}

	// list always re-fetches and carries the page-size limit
	if err := board.SwitchView(ctx, ViewList, from, to); err != nil {
		t.Fatal(err)
	}
	if b.listCalls != 2 || b.lastQuery.Get("limit") != "100" {
		t.Fatalf("calls = %d query = %v", b.listCalls, b.lastQuery)
	}
	if len(board.Groups()) != 2 {
		t.Fatalf("groups = %d", len(board.Groups()))
	}
}

func TestCoverageBucketAppliedLocally(t *testing.T) {
	b := &activityBackend{activities: boardFixture()}
	board, _ := newBoard(t, b)
	ctx := context.Background()
	from, to := window()

	if err := board.SwitchView(ctx, ViewCalendar, from, to); err != nil {
		t.Fatal(err)
	}
	if err := board.ApplyFilters(ctx, map[string]string{"coverage": "partial"}, from, to); err != nil {
		t.Fatal(err)
	}
	if b.lastQuery.Has("coverage") {
		t.Fatal("coverage must never reach the server query")
	}
	events := board.Events()
	if len(events) != 1 || events[0].ID != 6 {
		t.Fatalf("events = %+v", events)
	}
}

func TestFiltersPersistAcrossBoards(t *testing.T) {
	b := &activityBackend{activities: boardFixture()}
	board, store := newBoard(t, b)
	ctx := context.Background()
	from, to := window()

	form := map[string]string{"stato": "confermato", "tipo": ""}
	if err := board.ApplyFilters(ctx, form, from, to); err != nil {
		t.Fatal(err)
	}

	// a fresh board over the same store restores the saved set
	srv := httptest.NewServer(b.handler())
	defer srv.Close()
	next := NewBoard(api.NewClient(srv.URL), store, zap.NewNop().Sugar())
	if next.Filters().Empty() {
		t.Fatal("saved filters not restored")
	}
	if next.Filters()["stato"] != "confermato" {
		t.Fatalf("filters = %v", next.Filters())
	}
	if _, ok := next.Filters()["tipo"]; ok {
		t.Fatal("empty fields must not be persisted")
	}

	if err := next.ClearFilters(ctx, from, to); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := store.Get(ctx, session.FiltersKey); ok {
		t.Fatal("clear must delete the saved set")
	}
}

func TestMalformedSavedFiltersDiscarded(t *testing.T) {
	b := &activityBackend{activities: boardFixture()}
	srv := httptest.NewServer(b.handler())
	defer srv.Close()
	store, err := session.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	ctx := context.Background()
	if err := store.Put(ctx, session.FiltersKey, "{not json"); err != nil {
		t.Fatal(err)
	}

	board := NewBoard(api.NewClient(srv.URL), store, zap.NewNop().Sugar())
	if !board.Filters().Empty() {
		t.Fatalf("filters = %v", board.Filters())
	}
	if _, ok, _ := store.Get(ctx, session.FiltersKey); ok {
		t.Fatal("malformed saved state must be deleted")
	}
}

func TestAssignmentModalFlow(t *testing.T) {
	b := &activityBackend{activities: boardFixture(), detail: boardFixture()[0]}
	board, _ := newBoard(t, b)
	ctx := context.Background()
	from, to := window()

	if err := board.ShowActivity(ctx, 5); err != nil {
		t.Fatal(err)
	}
	if err := board.Assignment.Open(ctx, 5, 7); err != nil {
		t.Fatal(err)
	}
	opts := board.Assignment.Options()
	if len(opts) != 3 {
		t.Fatalf("options = %d", len(opts))
	}
	if opts[0].Instructor.DisplayName() != "Anna Bianchi" || opts[2].Instructor.DisplayName() != "Mario Verdi" {
		t.Fatalf("sort order = %q, %q", opts[0].Instructor.DisplayName(), opts[2].Instructor.DisplayName())
	}
	if !opts[1].Conflicted || opts[1].StatusLabel() != "Impegnato" {
		t.Fatalf("conflicted option = %+v", opts[1])
	}
	if opts[0].Conflicted || opts[0].StatusLabel() != "Disponibile" {
		t.Fatalf("free option = %+v", opts[0])
	}

	if board.Assignment.Select(3) {
		t.Fatal("conflicted instructor must not be selectable")
	}
	if board.Assignment.CanConfirm() {
		t.Fatal("confirm must stay disabled without a selection")
	}
	if !board.Assignment.Select(1) {
		t.Fatal("free instructor must be selectable")
	}
	if err := board.ConfirmAssignment(ctx, from, to); err != nil {
		t.Fatal(err)
	}
	if len(b.assignBodies) != 1 {
		t.Fatalf("assign calls = %d", len(b.assignBodies))
	}
	body := b.assignBodies[0]
	if body["instructor_id"] != 1 || body["requirement_id"] != 7 {
		t.Fatalf("assign body = %v", body)
	}
}

func TestSelfAssignRefreshesDetailAndCalendar(t *testing.T) {
	b := &activityBackend{activities: boardFixture(), detail: boardFixture()[0]}
	board, _ := newBoard(t, b)
	ctx := context.Background()
	from, to := window()

	if err := board.SwitchView(ctx, ViewCalendar, from, to); err != nil {
		t.Fatal(err)
	}
	if err := board.ShowActivity(ctx, 5); err != nil {
		t.Fatal(err)
	}
	calls := b.listCalls
	if err := board.SelfAssign(ctx, from, to); err != nil {
		t.Fatal(err)
	}
	if b.selfAssigns != 1 {
		t.Fatalf("self-assign calls = %d", b.selfAssigns)
	}
	if b.listCalls != calls+1 {
		t.Fatal("calendar must refetch after a self-assign")
	}
}

func TestSavePaymentNotes(t *testing.T) {
	b := &activityBackend{activities: boardFixture(), detail: boardFixture()[0]}
	board, _ := newBoard(t, b)
	ctx := context.Background()

	if err := board.ShowActivity(ctx, 5); err != nil {
		t.Fatal(err)
	}
	if err := board.SavePaymentNotes(ctx, "acconto ricevuto"); err != nil {
		t.Fatal(err)
	}
	if len(b.notesBodies) != 1 || b.notesBodies[0]["notes"] != "acconto ricevuto" {
		t.Fatalf("notes bodies = %v", b.notesBodies)
	}
	if board.Current().PaymentNotes != "acconto ricevuto" {
		t.Fatal("local detail must mirror the saved notes")
	}

	board.ClearPaymentNotes()
	if board.Current().PaymentNotes != "" {
		t.Fatal("clear must empty the local field")
	}

	board.CloseActivity()
	if board.Current() != nil {
		t.Fatal("detail must reset on close")
	}
}
