package session

import (
	"context"
	"path/filepath"
	"testing"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := openStore(t)
	v, ok, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatal(err)
	}
	if ok || v != "" {
		t.Fatalf("got %q ok=%v, want empty miss", v, ok)
	}
}

func TestPutGetOverwriteDelete(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, FiltersKey, `{"stato":"confermato"}`); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get(ctx, FiltersKey)
	if err != nil || !ok {
		t.Fatalf("get: %v ok=%v", err, ok)
	}
	if v != `{"stato":"confermato"}` {
		t.Fatalf("value = %q", v)
	}

	if err := s.Put(ctx, FiltersKey, `{}`); err != nil {
		t.Fatal(err)
	}
	v, _, _ = s.Get(ctx, FiltersKey)
	if v != `{}` {
		t.Fatalf("overwrite kept %q", v)
	}

	if err := s.Delete(ctx, FiltersKey); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, FiltersKey); ok {
		t.Fatal("key survived delete")
	}
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if err := s.Put(context.Background(), "k", "v"); err != nil {
		t.Fatal(err)
	}
}
