package session

import (
	"sync"
	"time"
)

// Bounds on the per-session display rings.
const (
	MaxCalculationHistory = 10
	MaxRecentTopics       = 5
	MaxPreferredDomains   = 5
	TopicPrefixLen        = 40
)

// Turn is one conversation entry, user or assistant.
type Turn struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Calculation is one recorded calculation request/response pair.
type Calculation struct {
	Query     string    `json:"query"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one user's bounded conversation. The expiry window anchors on
// CreatedAt and is never extended by activity.
type Session struct {
	ID             string
	CreatedAt      time.Time
	LastActivityAt time.Time

	Turns              []Turn
	MemoryRetention    map[string]string
	CalculationHistory []Calculation
	RecentTopics       []string
	KnowledgeUsage     map[string]int
	PreferredDomains   []string
	Warnings           int

	ExternalSearches     int
	MathematicalRequests int
	BrowsingSessions     int

	// mu serializes same-session mutations when concurrent requests share a
	// session token. The store has its own lock for the registry itself.
	mu sync.Mutex
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// AppendTurn adds a conversation entry in arrival order.
func (s *Session) AppendTurn(sender, text string, at time.Time) {
	s.Turns = append(s.Turns, Turn{Sender: sender, Text: text, Timestamp: at})
}

// RecentTurns returns the most recent n turns, oldest first.
func (s *Session) RecentTurns(n int) []Turn {
	if n <= 0 || len(s.Turns) == 0 {
		return nil
	}
	if len(s.Turns) <= n {
		out := make([]Turn, len(s.Turns))
		copy(out, s.Turns)
		return out
	}
	out := make([]Turn, n)
	copy(out, s.Turns[len(s.Turns)-n:])
	return out
}

// AddCalculation appends to the calculation ring, evicting the oldest past
// MaxCalculationHistory entries.
func (s *Session) AddCalculation(query, result string, at time.Time) {
	s.CalculationHistory = append(s.CalculationHistory, Calculation{
		Query:     query,
		Result:    result,
		Timestamp: at,
	})
	if n := len(s.CalculationHistory); n > MaxCalculationHistory {
		s.CalculationHistory = s.CalculationHistory[n-MaxCalculationHistory:]
	}
}

// AddTopic appends a truncated topic prefix to the display ring.
func (s *Session) AddTopic(topic string) {
	if topic == "" {
		return
	}
	s.RecentTopics = append(s.RecentTopics, topic)
	if n := len(s.RecentTopics); n > MaxRecentTopics {
		s.RecentTopics = s.RecentTopics[n-MaxRecentTopics:]
	}
}

// TrackDomain bumps a domain's usage counter and records it among the
// preferred domains (capped, first-triggered order, no duplicates).
func (s *Session) TrackDomain(domain string) {
	if domain == "" {
		return
	}
	s.KnowledgeUsage[domain]++
	for _, d := range s.PreferredDomains {
		if d == domain {
			return
		}
	}
	if len(s.PreferredDomains) < MaxPreferredDomains {
		s.PreferredDomains = append(s.PreferredDomains, domain)
	}
}

// ResetHistory clears conversation, memory, and calculation state while
// preserving the expiry clock and identity.
func (s *Session) ResetHistory() {
	s.Turns = nil
	s.MemoryRetention = map[string]string{}
	s.CalculationHistory = nil
}
