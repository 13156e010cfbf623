// NetraGPT - conversational chatbot backend
// License: MIT
//
// Copyright (c) 2026 NetraGPT contributors

package memory

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/DMWllc/netragpt/pkg/session"
	"github.com/DMWllc/netragpt/pkg/textmatch"
)

// Fact kinds form a fixed finite set. Values are free text and deliberately
// unvalidated: extraction is best-effort, first-seen value wins.
const (
	FactName       = "user_name"
	FactLocation   = "location"
	FactInterests  = "interests"
	FactProfession = "profession"
)

type factRule struct {
	kind string
	cue  textmatch.CuePattern
}

// factRules is the declarative (fact-kind, cue-pattern) table applied in
// fixed order on every user turn.
var factRules = []factRule{
	{FactName, textmatch.NewCuePattern("my name is", "call me", "i am called")},
	{FactLocation, textmatch.NewCuePattern("i live in", "i am from", "i'm from", "i stay in")},
	{FactInterests, textmatch.NewCuePattern("i like", "i love", "i enjoy", "i am interested in", "i'm interested in")},
	{FactProfession, textmatch.NewCuePattern("i work as", "i work at", "my profession is", "my job is")},
}

var calculationTriggers = textmatch.KeywordSet{
	"calculate", "compute", "solve", "evaluate", "how much is", "what is the value",
}

// ExtractAndMerge applies the fact-rule table to a message and merges new
// facts into the session. A kind already present is never overwritten.
// Caller holds the session lock.
func ExtractAndMerge(s *session.Session, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}

	// Interrogative turns ("do I like pizza?") are not declarations; skip
	// fact capture but still record the topic.
	if !textmatch.IsLikelyQuestion(message) {
		for _, rule := range factRules {
			if _, exists := s.MemoryRetention[rule.kind]; exists {
				continue
			}
			value := rule.cue.Capture(message)
			if value == "" {
				continue
			}
			s.MemoryRetention[rule.kind] = value
		}
	}

	s.AddTopic(textmatch.TopicPrefix(message, session.TopicPrefixLen))
}

// RecordCalculation appends the query/response pair to the calculation ring
// when the message carries a calculation trigger. Caller holds the session
// lock.
func RecordCalculation(s *session.Session, query, response string, at time.Time) bool {
	if !calculationTriggers.ContainsAny(query) {
		return false
	}
	s.AddCalculation(query, response, at)
	s.MathematicalRequests++
	return true
}

// NewConversation is the summary of a session with no retained facts, topics,
// or domain usage. Callers compare against it to decide whether memory
// belongs in LLM context at all.
const NewConversation = "New conversation"

// Summarize renders the session memory as a single human-readable line.
func Summarize(s *session.Session, remainingMinutes int) string {
	if len(s.MemoryRetention) == 0 && len(s.RecentTopics) == 0 && len(s.KnowledgeUsage) == 0 {
		return NewConversation
	}

	parts := []string{}
	if name, ok := s.MemoryRetention[FactName]; ok {
		parts = append(parts, "User: "+name)
	}
	for _, kind := range []string{FactLocation, FactInterests, FactProfession} {
		if v, ok := s.MemoryRetention[kind]; ok {
			parts = append(parts, fmt.Sprintf("%s: %s", strings.ReplaceAll(kind, "_", " "), v))
		}
	}

	if len(s.RecentTopics) > 0 {
		topics := s.RecentTopics
		if len(topics) > 3 {
			topics = topics[len(topics)-3:]
		}
		parts = append(parts, "recent topics: "+strings.Join(topics, "; "))
	}

	if top := topDomains(s.KnowledgeUsage, 2); len(top) > 0 {
		parts = append(parts, "top domains: "+strings.Join(top, ", "))
	}

	parts = append(parts, fmt.Sprintf("%d min left in session", remainingMinutes))
	return strings.Join(parts, " | ")
}

// topDomains returns the n most-used domains, ties broken by name so the
// order is stable across calls.
func topDomains(usage map[string]int, n int) []string {
	if len(usage) == 0 {
		return nil
	}
	names := make([]string, 0, len(usage))
	for name := range usage {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if usage[names[i]] != usage[names[j]] {
			return usage[names[i]] > usage[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}
