package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dotcommander/agentlens/internal/facts"
	"github.com/dotcommander/agentlens/internal/scoring"
	"github.com/dotcommander/agentlens/internal/weights"
	"github.com/dotcommander/agentlens/internal/report"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleResult(url string, score int) report.ScoreResult {
	cfg := weights.Default()
	grade, description := cfg.GradeFor(score)
	return report.ScoreResult{
		URL:              url,
		TotalScore:       score,
		Grade:            grade,
		GradeDescription: description,
		Context:          facts.ContextHybrid,
		CategoryScores: map[string]scoring.CategoryScore{
			weights.CategoryStructuredData: {
				CategoryKey: weights.CategoryStructuredData,
				Score:       float64(score),
				Weight:      0.25,
				Factors: []scoring.Factor{
					{Name: "product_schema", Status: scoring.StatusPass, Points: 30, MaxPoints: 30, Critical: true},
				},
			},
		},
		Timestamp: time.Now().UTC(),
	}
}

func TestRecordAndGetRoundTrip(t *testing.T) {
	store := openTestStore(t)

	original := sampleResult("https://shop.example.com/widget", 87)
	id, err := store.Record(original)
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if id == "" {
		t.Fatal("Record() returned empty id")
	}

	loaded, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if loaded.URL != original.URL || loaded.TotalScore != original.TotalScore || loaded.Grade != original.Grade {
		t.Errorf("round trip mismatch: got %s %d %s", loaded.URL, loaded.TotalScore, loaded.Grade)
	}
	if len(loaded.Categories) != 1 {
		t.Fatalf("got %d category rows, want 1", len(loaded.Categories))
	}
	row := loaded.Categories[0]
	if row.Category != weights.CategoryStructuredData || row.Score != 87 || row.Pass != 1 || row.Fail != 0 {
		t.Errorf("category snapshot did not survive the round trip: %+v", row)
	}
}

func TestListNewestFirstAndFiltered(t *testing.T) {
	store := openTestStore(t)

	for i, score := range []int{50, 70, 90} {
		r := sampleResult("https://shop.example.com/widget", score)
		r.Timestamp = time.Date(2026, 8, 1+i, 12, 0, 0, 0, time.UTC)
		if _, err := store.Record(r); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
	}
	other := sampleResult("https://shop.example.com/other", 40)
	other.Timestamp = time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	if _, err := store.Record(other); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	entries, err := store.List("", 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("List() returned %d entries, want 4", len(entries))
	}
	if entries[0].URL != "https://shop.example.com/other" {
		t.Errorf("newest entry = %s, want the most recently audited URL", entries[0].URL)
	}

	filtered, err := store.List("https://shop.example.com/widget", 2)
	if err != nil {
		t.Fatalf("List(filtered) error: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("filtered list = %d entries, want 2", len(filtered))
	}
	if filtered[0].TotalScore != 90 {
		t.Errorf("newest widget score = %d, want 90", filtered[0].TotalScore)
	}
}

func TestGetUnknownID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.Get("does-not-exist"); err == nil {
		t.Error("Get() with unknown id should error")
	}
}

func TestOpenReusesExistingSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reuse.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() error: %v", err)
	}
	id, err := first.Record(sampleResult("https://shop.example.com/widget", 75))
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() error: %v", err)
	}
	defer second.Close()
	if _, err := second.Get(id); err != nil {
		t.Errorf("audit recorded before reopen not found: %v", err)
	}
}
