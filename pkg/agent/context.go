// NetraGPT - conversational chatbot backend
// License: MIT
//
// Copyright (c) 2026 NetraGPT contributors

package agent

import (
	"strings"

	"github.com/DMWllc/netragpt/pkg/knowledge"
	"github.com/DMWllc/netragpt/pkg/memory"
	"github.com/DMWllc/netragpt/pkg/router"
	"github.com/DMWllc/netragpt/pkg/session"
)

// marketplaceBrief is the static marketplace section used when no live
// marketplace feed is wired. Kept short so it flavors rather than dominates
// the prompt.
const marketplaceBrief = "Netra is a local-services marketplace where users book vetted vendors " +
	"(plumbing, electrical, cleaning, tutoring and more), track orders, and manage payments. " +
	"Bookings, reschedules, and refunds are handled from the user's order page."

// BuildContext assembles the auxiliary text block injected into the general
// LLM responder. Up to four labeled sections, each included only when its
// data is non-empty. Listing the relevant domains increments their usage
// counters on the session. Caller holds the session lock.
func BuildContext(s *session.Session, domains []router.Domain, research *knowledge.Result, remainingMinutes int) string {
	var sections []string

	for _, d := range domains {
		if d.Tag == "marketplace" {
			sections = append(sections, "Netra marketplace knowledge:\n"+marketplaceBrief)
			break
		}
	}

	if block := researchSection(research); block != "" {
		sections = append(sections, block)
	}

	if summary := memory.Summarize(s, remainingMinutes); summary != memory.NewConversation {
		sections = append(sections, "Conversation memory:\n"+summary)
	}

	lines := make([]string, 0, len(domains))
	for _, d := range domains {
		s.TrackDomain(d.Tag)
		lines = append(lines, "- "+d.Name+": "+d.Description)
	}
	sections = append(sections, "Relevant knowledge domains:\n"+strings.Join(lines, "\n"))

	return strings.Join(sections, "\n\n")
}

// researchSection renders external lookups with a fixed preference order:
// person lookup beats the Wikipedia extract, which beats raw search snippets.
// Person lookups are never combined with generic snippets in the same turn.
func researchSection(research *knowledge.Result) string {
	if research.Empty() {
		return ""
	}

	if research.PersonSummary != "" {
		return "External research:\n" + research.PersonSummary
	}
	if research.WikipediaExtract != "" {
		return "External research:\n" + research.WikipediaExtract
	}
	if len(research.Snippets) > 0 {
		lines := make([]string, 0, len(research.Snippets))
		for _, sn := range research.Snippets {
			line := sn.Title
			if sn.Text != "" {
				line += ": " + sn.Text
			}
			lines = append(lines, "- "+line)
		}
		return "External research:\n" + strings.Join(lines, "\n")
	}
	return ""
}
