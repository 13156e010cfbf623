package sweeper

import (
	"testing"
	"time"

	"github.com/DMWllc/netragpt/pkg/session"
)

func TestValidSchedule(t *testing.T) {
	store := session.NewStore(20 * time.Minute)

	if !New(store, nil, "*/5 * * * *").Valid() {
		t.Error("every-five-minutes schedule should be valid")
	}
	if New(store, nil, "not a cron line").Valid() {
		t.Error("garbage schedule should be invalid")
	}
}

func TestDefaultScheduleApplied(t *testing.T) {
	sw := New(session.NewStore(20*time.Minute), nil, "")
	if sw.schedule != "*/5 * * * *" {
		t.Errorf("schedule = %q", sw.schedule)
	}
	if !sw.Valid() {
		t.Error("default schedule must be valid")
	}
}

func TestSweepRemovesExpiredOnly(t *testing.T) {
	store := session.NewStore(20 * time.Minute)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	store.SetClock(func() time.Time { return now })

	stale := store.Create()
	now = base.Add(21 * time.Minute)
	fresh := store.Create()

	sw := New(store, nil, "* * * * *")
	sw.sweep()

	if _, ok := store.Get(stale.ID); ok {
		t.Error("expired session should be swept")
	}
	if _, ok := store.Get(fresh.ID); !ok {
		t.Error("live session must survive the sweep")
	}
}
