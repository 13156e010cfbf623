package session

import (
	"testing"
	"time"
)

func newTestStore(ttl time.Duration) (*Store, *time.Time) {
	st := NewStore(ttl)
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st.SetClock(func() time.Time { return current })
	return st, &current
}

func TestStore_CreateInitializesDefaults(t *testing.T) {
	st, _ := newTestStore(20 * time.Minute)

	s := st.Create()
	if s.ID == "" {
		t.Fatal("expected session id")
	}
	if s.MemoryRetention == nil || s.KnowledgeUsage == nil {
		t.Fatal("maps must be initialized")
	}
	if len(s.Turns) != 0 || len(s.CalculationHistory) != 0 {
		t.Fatal("collections must start empty")
	}
	if !s.LastActivityAt.Equal(s.CreatedAt) {
		t.Fatal("last activity must start at creation time")
	}
}

func TestStore_GetOrCreate(t *testing.T) {
	st, now := newTestStore(20 * time.Minute)

	s := st.Create()
	*now = now.Add(3 * time.Minute)

	got, created := st.GetOrCreate(s.ID)
	if created {
		t.Fatal("known id must not create")
	}
	if got.ID != s.ID {
		t.Fatalf("got %q, want %q", got.ID, s.ID)
	}
	if !got.LastActivityAt.Equal(*now) {
		t.Error("fetch must refresh last activity")
	}

	if _, created := st.GetOrCreate(""); !created {
		t.Error("empty id must create")
	}
	if _, created := st.GetOrCreate("unknown-token"); !created {
		t.Error("unknown id must create")
	}
}

// Expiry is a pure function of creation time: 1199s elapsed is live,
// 1201s is expired, regardless of intervening activity.
func TestStore_ExpiryIgnoresActivity(t *testing.T) {
	st, now := newTestStore(1200 * time.Second)

	s := st.Create()
	created := s.CreatedAt

	*now = created.Add(1199 * time.Second)
	st.GetOrCreate(s.ID) // activity must not extend the window
	if st.IsExpired(created) {
		t.Error("session at 1199s must be live")
	}

	*now = created.Add(1201 * time.Second)
	if !st.IsExpired(created) {
		t.Error("session at 1201s must be expired")
	}
}

func TestStore_TimeRemainingMinutes(t *testing.T) {
	st, now := newTestStore(1200 * time.Second)

	s := st.Create()
	cases := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 20},
		{61 * time.Second, 18},
		{19*time.Minute + 30*time.Second, 0},
		{25 * time.Minute, 0},
	}
	for _, tc := range cases {
		*now = s.CreatedAt.Add(tc.elapsed)
		if got := st.TimeRemainingMinutes(s.CreatedAt); got != tc.want {
			t.Errorf("elapsed %v: remaining = %d, want %d", tc.elapsed, got, tc.want)
		}
	}
}

func TestStore_SweepExpired(t *testing.T) {
	st, now := newTestStore(1200 * time.Second)

	old := st.Create()
	*now = now.Add(21 * time.Minute)
	fresh := st.Create()

	removed := st.SweepExpired()
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, ok := st.Get(old.ID); ok {
		t.Error("expired session must be gone")
	}
	if _, ok := st.Get(fresh.ID); !ok {
		t.Error("live session must survive the sweep")
	}
}

func TestStore_MaybeSweep(t *testing.T) {
	st, now := newTestStore(1200 * time.Second)

	st.Create()
	*now = now.Add(30 * time.Minute)

	if got := st.MaybeSweep(0); got != 0 {
		t.Errorf("probability 0 must never sweep, got %d", got)
	}
	if got := st.MaybeSweep(1); got != 1 {
		t.Errorf("probability 1 must sweep, got %d", got)
	}
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	st, _ := newTestStore(20 * time.Minute)

	s := st.Create()
	st.Clear(s.ID)
	st.Clear(s.ID)
	if st.Count() != 0 {
		t.Errorf("count = %d, want 0", st.Count())
	}
}

func TestSession_CalculationEviction(t *testing.T) {
	st, now := newTestStore(20 * time.Minute)

	s := st.Create()
	for i := 0; i < 12; i++ {
		s.AddCalculation(string(rune('a'+i)), "r", *now)
	}
	if len(s.CalculationHistory) != MaxCalculationHistory {
		t.Fatalf("history length = %d, want %d", len(s.CalculationHistory), MaxCalculationHistory)
	}
	if s.CalculationHistory[0].Query != "c" {
		t.Errorf("oldest surviving entry = %q, want %q", s.CalculationHistory[0].Query, "c")
	}
	if s.CalculationHistory[9].Query != "l" {
		t.Errorf("newest entry = %q, want %q", s.CalculationHistory[9].Query, "l")
	}
}

func TestSession_TopicRing(t *testing.T) {
	st, _ := newTestStore(20 * time.Minute)

	s := st.Create()
	for i := 0; i < 7; i++ {
		s.AddTopic(string(rune('a' + i)))
	}
	if len(s.RecentTopics) != MaxRecentTopics {
		t.Fatalf("topics length = %d, want %d", len(s.RecentTopics), MaxRecentTopics)
	}
	if s.RecentTopics[0] != "c" {
		t.Errorf("oldest topic = %q, want %q", s.RecentTopics[0], "c")
	}
}

func TestSession_TrackDomain(t *testing.T) {
	st, _ := newTestStore(20 * time.Minute)

	s := st.Create()
	for i := 0; i < 8; i++ {
		s.TrackDomain("physics")
	}
	if s.KnowledgeUsage["physics"] != 8 {
		t.Errorf("usage = %d, want 8", s.KnowledgeUsage["physics"])
	}
	for _, d := range []string{"a", "b", "c", "d", "e", "f"} {
		s.TrackDomain(d)
	}
	if len(s.PreferredDomains) != MaxPreferredDomains {
		t.Errorf("preferred domains = %d, want %d", len(s.PreferredDomains), MaxPreferredDomains)
	}
}

func TestSession_RecentTurns(t *testing.T) {
	st, now := newTestStore(20 * time.Minute)

	s := st.Create()
	for i := 0; i < 15; i++ {
		s.AppendTurn("user", string(rune('a'+i)), *now)
	}
	recent := s.RecentTurns(10)
	if len(recent) != 10 {
		t.Fatalf("recent length = %d, want 10", len(recent))
	}
	if recent[0].Text != "f" || recent[9].Text != "o" {
		t.Errorf("unexpected window: first=%q last=%q", recent[0].Text, recent[9].Text)
	}
}

func TestSession_ResetHistoryKeepsClock(t *testing.T) {
	st, _ := newTestStore(20 * time.Minute)

	s := st.Create()
	created := s.CreatedAt
	s.AppendTurn("user", "hi", created)
	s.MemoryRetention["user_name"] = "asha"
	s.AddCalculation("2+2", "4", created)

	s.ResetHistory()
	s.ResetHistory() // idempotent

	if len(s.Turns) != 0 || len(s.MemoryRetention) != 0 || len(s.CalculationHistory) != 0 {
		t.Error("reset must clear conversation, memory, calculations")
	}
	if !s.CreatedAt.Equal(created) {
		t.Error("reset must not touch the expiry clock")
	}
}
