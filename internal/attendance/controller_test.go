package attendance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"sort"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/asdclub/club-console/internal/api"
)

func TestCanSelfToggle(t *testing.T) {
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	cases := []struct {
		now  time.Time
		want bool
	}{
		{start.Add(-4 * time.Hour), true},
		{start.Add(-3*time.Hour - time.Second), true},
		{start.Add(-3 * time.Hour), false}, // boundary: window closed
		{start.Add(-time.Hour), false},
		{start.Add(time.Hour), false},
	}
	for _, c := range cases {
		if got := CanSelfToggle(c.now, start); got != c.want {
			t.Fatalf("CanSelfToggle(%v) = %v, want %v", c.now, got, c.want)
		}
	}
}

func TestCategoryDiff(t *testing.T) {
	toAdd, toRemove := CategoryDiff([]string{"A", "B"}, []string{"B", "C"})
	if !reflect.DeepEqual(toAdd, []string{"C"}) {
		t.Fatalf("toAdd = %v", toAdd)
	}
	if !reflect.DeepEqual(toRemove, []string{"A"}) {
		t.Fatalf("toRemove = %v", toRemove)
	}

	toAdd, toRemove = CategoryDiff([]string{"A", "B"}, []string{"B", "A"})
	if len(toAdd) != 0 || len(toRemove) != 0 {
		t.Fatalf("equal sets must not diff: %v %v", toAdd, toRemove)
	}
}

// categoryServer keeps toggle semantics server-side: POST adds when absent,
// removes when present.
type categoryServer struct {
	mu    sync.Mutex
	set   map[string]bool
	calls int
}

func (s *categoryServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.calls++
		name, _ := url.PathUnescape(r.URL.Path[len("/trainings/1/categories/"):])
		if s.set[name] {
			delete(s.set, name)
		} else {
			s.set[name] = true
		}
		_, _ = w.Write([]byte(`{}`))
	})
}

func (s *categoryServer) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for n := range s.set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func newController(t *testing.T, srvURL string) *Controller {
	t.Helper()
	return New(api.NewClient(srvURL), zap.NewNop().Sugar())
}

func TestReconcileCategoriesCallsOncePerDiff(t *testing.T) {
	backend := &categoryServer{set: map[string]bool{"A": true, "B": true}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	ctrl := newController(t, srv.URL)
	err := ctrl.ReconcileCategories(context.Background(), 1, []string{"A", "B"}, []string{"B", "C"})
	if err != nil {
		t.Fatal(err)
	}
	if backend.calls != 2 {
		t.Fatalf("calls = %d, want one per symmetric-difference element", backend.calls)
	}
	if got := backend.names(); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Fatalf("server set = %v", got)
	}
}

func TestReconcileCategoriesNoopWhenEqual(t *testing.T) {
	backend := &categoryServer{set: map[string]bool{"A": true}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	ctrl := newController(t, srv.URL)
	if err := ctrl.ReconcileCategories(context.Background(), 1, []string{"A"}, []string{"A"}); err != nil {
		t.Fatal(err)
	}
	if backend.calls != 0 {
		t.Fatalf("calls = %d, want 0", backend.calls)
	}
}

func TestToggleTwiceRoundTrips(t *testing.T) {
	backend := &categoryServer{set: map[string]bool{"A": true}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	ctrl := newController(t, srv.URL)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := ctrl.ToggleCategory(ctx, 1, "B"); err != nil {
			t.Fatal(err)
		}
	}
	if got := backend.names(); !reflect.DeepEqual(got, []string{"A"}) {
		t.Fatalf("set after add+remove = %v, want original", got)
	}

	for i := 0; i < 2; i++ {
		if err := ctrl.ToggleCategory(ctx, 1, "A"); err != nil {
			t.Fatal(err)
		}
	}
	if got := backend.names(); !reflect.DeepEqual(got, []string{"A"}) {
		t.Fatalf("set after remove+add = %v, want original", got)
	}
}
