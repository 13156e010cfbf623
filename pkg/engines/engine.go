// NetraGPT - conversational chatbot backend
// License: MIT
//
// Copyright (c) 2026 NetraGPT contributors

package engines

import "strings"

// Content is the structured output of a domain engine before formatting.
type Content struct {
	Title    string
	Body     string
	Steps    []string
	Footnote string
}

// Engine is a pluggable responder for one domain. Process returns nil when
// the message is outside the engine's competence; it never returns an error.
// Local failures degrade to nil so the orchestrator's fallback logic takes
// over.
type Engine interface {
	Name() string
	Process(message string) *Content
}

// Format renders structured content to chat-displayable markdown. Returns ""
// for nil content. Deterministic for a given input.
func Format(c *Content) string {
	if c == nil {
		return ""
	}
	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString("**" + c.Title + "**\n\n")
	}
	if c.Body != "" {
		sb.WriteString(c.Body)
	}
	for i, step := range c.Steps {
		if i == 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("\n- " + step)
	}
	if c.Footnote != "" {
		sb.WriteString("\n\n_" + c.Footnote + "_")
	}
	return strings.TrimSpace(sb.String())
}

// Registry maps router targets to engines.
type Registry struct {
	engines map[string]Engine
}

func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]Engine)}
}

func (r *Registry) Register(target string, e Engine) {
	r.engines[target] = e
}

func (r *Registry) Get(target string) (Engine, bool) {
	e, ok := r.engines[target]
	return e, ok
}

// DefaultRegistry wires every built-in engine under its dispatch target.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("physics", NewPhysicsEngine())
	r.Register("chemistry", NewChemistryEngine())
	r.Register("biology", NewBiologyEngine())
	r.Register("support", NewSupportEngine())
	r.Register("identity", NewIdentityEngine())
	return r
}
