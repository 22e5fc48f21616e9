package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asdclub/club-console/internal/models"
)

func TestErrorMessageFromDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Cambio limite superato"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ToggleAttendance(context.Background(), 5, models.Present)
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Message != "Cambio limite superato" {
		t.Fatalf("message = %q", apiErr.Message)
	}
	if apiErr.System() {
		t.Fatal("a 400 is a business rejection, not a system failure")
	}
}

func TestErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`boom`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Roster(context.Background(), 1)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Message != "Errore" {
		t.Fatalf("fallback message = %q", apiErr.Message)
	}
	if !apiErr.System() {
		t.Fatal("5xx must be a system failure")
	}
}

func TestEnvelopeBusinessFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"Slot già occupato"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.SelfAssign(context.Background(), 9)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Message != "Slot già occupato" {
		t.Fatalf("message = %q", apiErr.Message)
	}
	if apiErr.System() {
		t.Fatal("success:false in a 2xx body is a business failure")
	}
}

func TestToggleCategoryEscapesName(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.ToggleTrainingCategory(context.Background(), 7, "Over 14"); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/trainings/7/categories/Over%2014" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestSetAttendanceRequest(t *testing.T) {
	var body map[string]any
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID")
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content type = %q", r.Header.Get("Content-Type"))
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{"status":"maybe","change_count":0}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res, err := c.SetAttendance(context.Background(), 12, 34, models.Maybe, nil)
	if err != nil {
		t.Fatal(err)
	}
	if method != http.MethodPost || path != "/trainings/12/attendance/34" {
		t.Fatalf("%s %s", method, path)
	}
	if body["status"] != "maybe" {
		t.Fatalf("status = %v", body["status"])
	}
	if v, ok := body["reason"]; !ok || v != nil {
		t.Fatalf("reason = %v", v)
	}
	if res.Status != models.Maybe {
		t.Fatalf("result status = %q", res.Status)
	}
}

func TestSessionCookieSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie("session")
		if err != nil || ck.Value != "tok123" {
			t.Errorf("session cookie = %v, %v", ck, err)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithSessionToken("tok123"))
	if _, err := c.ListAthletes(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestStatsFilterQuery(t *testing.T) {
	f := StatsFilter{Year: 2025, Month: 3, Categorie: []string{"Over 14", "Master"}, Tipi: []string{"barca"}}
	q := f.Query()
	if got := q.Get("year"); got != "2025" {
		t.Fatalf("year = %q", got)
	}
	if got := q.Get("month"); got != "3" {
		t.Fatalf("month = %q", got)
	}
	if got := q["categoria"]; len(got) != 2 || got[0] != "Over 14" {
		t.Fatalf("categoria = %v", got)
	}
	if got := q["tipo"]; len(got) != 1 || got[0] != "barca" {
		t.Fatalf("tipo = %v", got)
	}

	whole := StatsFilter{Year: 2025}
	if _, ok := whole.Query()["month"]; ok {
		t.Fatal("zero month must be omitted")
	}
}

func TestStatsCSVURLMatchesQuery(t *testing.T) {
	c := NewClient("http://backend")
	f := StatsFilter{Year: 2024, Tipi: []string{"canoa"}}
	want := "http://backend/api/trainings/stats.csv?" + f.Query().Encode()
	if got := c.StatsCSVURL(f); got != want {
		t.Fatalf("csv url = %q, want %q", got, want)
	}
}

func TestSaveMeasurementDropsEmptyFields(t *testing.T) {
	var body map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.SaveMeasurement(context.Background(), 3, map[string]string{"weight": "72.5", "height": ""})
	if err != nil {
		t.Fatal(err)
	}
	if len(body) != 1 || body["weight"] != "72.5" {
		t.Fatalf("payload = %v", body)
	}
}
