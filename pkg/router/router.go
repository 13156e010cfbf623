// NetraGPT - conversational chatbot backend
// License: MIT
//
// Copyright (c) 2026 NetraGPT contributors

package router

import (
	"sort"

	"github.com/DMWllc/netragpt/pkg/textmatch"
)

// Target identifies the responder a message is dispatched to.
type Target string

const (
	TargetSupport   Target = "support"
	TargetPhysics   Target = "physics"
	TargetChemistry Target = "chemistry"
	TargetBiology   Target = "biology"
	TargetIdentity  Target = "identity"
	TargetGeneral   Target = "general"
)

type dispatchRule struct {
	target   Target
	keywords textmatch.KeywordSet
}

// dispatchRules is checked in order; the first match wins. Support keywords
// outrank every science keyword, so "my netra billing issue with physics
// homework" dispatches to support.
var dispatchRules = []dispatchRule{
	{TargetSupport, textmatch.KeywordSet{
		"billing", "refund", "payment", "invoice", "subscription", "cancel my",
		"account issue", "login problem", "customer support", "complaint",
		"order status", "my order", "delivery issue", "technical issue",
	}},
	{TargetPhysics, textmatch.KeywordSet{
		"physics", "velocity", "acceleration", "projectile", "newton", "momentum",
		"kinematics", "friction", "gravity", "thermodynamics", "voltage", "circuit",
		"wavelength", "quantum",
	}},
	{TargetChemistry, textmatch.KeywordSet{
		"chemistry", "molecule", "chemical", "reaction", "periodic table", "element",
		"compound", "acid", "base", "ph value", "molar", "electron configuration",
		"covalent", "ionic bond",
	}},
	{TargetBiology, textmatch.KeywordSet{
		"biology", "cell", "dna", "photosynthesis", "organism", "mitosis",
		"protein", "enzyme", "ecosystem", "evolution", "anatomy", "bacteria",
	}},
	{TargetIdentity, textmatch.KeywordSet{
		"who are you", "what are you", "netra", "who made you", "about yourself",
		"your company",
	}},
}

// Route maps a message to exactly one target. Always resolves; ambiguity
// cannot occur because the priority order is total and general is the
// default.
func Route(message string) Target {
	for _, rule := range dispatchRules {
		if rule.keywords.ContainsAny(message) {
			return rule.target
		}
	}
	return TargetGeneral
}

// Domain is a named topical category used for soft relevance ranking and
// usage tracking. Distinct from the hard dispatch targets above.
type Domain struct {
	Tag         string
	Name        string
	Description string
}

// DefaultDomain is returned alone when nothing scores.
var DefaultDomain = Domain{
	Tag:         "general_knowledge",
	Name:        "General Knowledge",
	Description: "Broad factual and conversational assistance",
}

var domainCatalog = []Domain{
	{"marketplace", "Netra Marketplace", "Service bookings, vendors, and orders on the Netra platform"},
	{"science", "Science", "Physics, chemistry, and biology concepts"},
	{"calculations", "Calculations", "Arithmetic, percentages, and unit conversions"},
	{"technology", "Technology", "Software, devices, and the internet"},
	{"current_events", "Current Events", "News, weather, and happenings"},
	{"lifestyle", "Lifestyle", "Travel, food, health, and daily living"},
	DefaultDomain,
}

var domainKeywords = map[string]textmatch.KeywordSet{
	"marketplace":       {"book", "booking", "service", "vendor", "appointment", "order", "hire", "plumber", "electrician", "cleaning"},
	"science":           {"physics", "chemistry", "biology", "experiment", "theory", "scientific", "formula", "atom", "energy"},
	"calculations":      {"calculate", "compute", "percent", "equation", "solve", "math", "convert", "average"},
	"technology":        {"computer", "software", "app", "internet", "phone", "code", "website", "ai"},
	"current_events":    {"news", "today", "weather", "currency", "latest", "happening"},
	"lifestyle":         {"travel", "recipe", "food", "health", "exercise", "movie", "music"},
	"general_knowledge": {"explain", "tell me", "what is", "history", "meaning"},
}

var (
	serviceLanguage = textmatch.KeywordSet{"book", "hire", "service", "appointment", "vendor"}
	factualLanguage = textmatch.KeywordSet{"why", "how does", "explain", "what causes"}
	mathLanguage    = textmatch.KeywordSet{"calculate", "solve", "compute", "+", "percent"}
)

// RelevantDomains is the soft classifier used only for LLM context flavor.
// It scores keyword hits per domain, applies the fixed priority boosts, and
// returns the top 3 domains with nonzero score, or just the default domain.
func RelevantDomains(message string) []Domain {
	scores := map[string]int{}
	for tag, kws := range domainKeywords {
		if hits := kws.CountHits(message); hits > 0 {
			scores[tag] = hits
		}
	}

	if serviceLanguage.ContainsAny(message) {
		scores["marketplace"] += 3
	}
	if factualLanguage.ContainsAny(message) {
		scores["science"] += 2
	}
	if mathLanguage.ContainsAny(message) {
		scores["calculations"] += 3
	}

	if len(scores) == 0 {
		return []Domain{DefaultDomain}
	}

	tags := make([]string, 0, len(scores))
	for tag := range scores {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if scores[tags[i]] != scores[tags[j]] {
			return scores[tags[i]] > scores[tags[j]]
		}
		return tags[i] < tags[j]
	})
	if len(tags) > 3 {
		tags = tags[:3]
	}

	out := make([]Domain, 0, len(tags))
	for _, tag := range tags {
		if d, ok := domainByTag(tag); ok {
			out = append(out, d)
		}
	}
	return out
}

func domainByTag(tag string) (Domain, bool) {
	for _, d := range domainCatalog {
		if d.Tag == tag {
			return d, true
		}
	}
	return Domain{}, false
}
