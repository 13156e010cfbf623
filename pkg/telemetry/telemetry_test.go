package telemetry

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "telemetry.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)

	if err := s.Record("chat_turn_ms", 42.5, map[string]string{"target": "physics"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Increment("chat_turns", nil); err != nil {
		t.Fatalf("Increment: %v", err)
	}

	got, err := s.Recent("chat_turn_ms", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d samples, want 1", len(got))
	}
	if got[0].Value != 42.5 {
		t.Errorf("value = %v", got[0].Value)
	}
	if got[0].Tags["target"] != "physics" {
		t.Errorf("tags = %v", got[0].Tags)
	}
}

func TestSum(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		if err := s.Increment("sessions_swept", nil); err != nil {
			t.Fatalf("Increment: %v", err)
		}
	}
	total, err := s.Sum("sessions_swept")
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %v, want 3", total)
	}

	// Unknown metric sums to zero, not an error.
	total, err = s.Sum("missing")
	if err != nil {
		t.Fatalf("Sum missing: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %v, want 0", total)
	}
}

func TestNilStoreIsSafe(t *testing.T) {
	var s *Store
	if err := s.Record("x", 1, nil); err != nil {
		t.Errorf("nil store Record: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("nil store Close: %v", err)
	}
}
