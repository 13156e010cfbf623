package engines

import (
	"strings"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}

	c := &Content{
		Title:    "Projectile Motion",
		Body:     "A parabola.",
		Steps:    []string{"one", "two"},
		Footnote: "ask for more",
	}
	got := Format(c)
	for _, want := range []string{"**Projectile Motion**", "A parabola.", "- one", "- two", "_ask for more_"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatted output missing %q:\n%s", want, got)
		}
	}

	// deterministic
	if Format(c) != got {
		t.Error("Format must be deterministic")
	}
}

func TestScienceEngines_KnownTopics(t *testing.T) {
	cases := []struct {
		engine Engine
		msg    string
		want   string
	}{
		{NewPhysicsEngine(), "explain projectile motion please", "Projectile Motion"},
		{NewPhysicsEngine(), "what is newton's second law", "Newton"},
		{NewChemistryEngine(), "how does ph relate to acids", "pH"},
		{NewBiologyEngine(), "describe photosynthesis", "Photosynthesis"},
	}
	for _, tc := range cases {
		c := tc.engine.Process(tc.msg)
		if c == nil {
			t.Errorf("%s engine returned nil for %q", tc.engine.Name(), tc.msg)
			continue
		}
		if !strings.Contains(c.Title, tc.want) {
			t.Errorf("%s engine title = %q, want contains %q", tc.engine.Name(), c.Title, tc.want)
		}
	}
}

func TestScienceEngines_UnknownTopicReturnsNil(t *testing.T) {
	for _, e := range []Engine{NewPhysicsEngine(), NewChemistryEngine(), NewBiologyEngine()} {
		if c := e.Process("what's a good pasta recipe"); c != nil {
			t.Errorf("%s engine should return nil outside its domain, got %q", e.Name(), c.Title)
		}
		if c := e.Process(""); c != nil {
			t.Errorf("%s engine should return nil for empty input", e.Name())
		}
	}
}

func TestSupportEngine_AlwaysAnswers(t *testing.T) {
	e := NewSupportEngine()

	c := e.Process("I was double charged on my invoice")
	if c == nil || c.Title != "Billing Help" {
		t.Fatalf("expected billing flow, got %+v", c)
	}

	c = e.Process("something vague about my experience")
	if c == nil {
		t.Fatal("support engine must produce a generic fallback")
	}
}

func TestUtilityEngine_Arithmetic(t *testing.T) {
	e := NewUtilityEngine()

	c := e.Process("calculate 15 % of 240 for me")
	if c == nil || !strings.Contains(c.Body, "= 36") {
		t.Fatalf("percent calculation failed: %+v", c)
	}

	c = e.Process("what is 12 * 12")
	if c == nil || !strings.Contains(c.Body, "= 144") {
		t.Fatalf("multiplication failed: %+v", c)
	}

	c = e.Process("what is 5 / 0")
	if c == nil || !strings.Contains(c.Body, "undefined") {
		t.Fatalf("division by zero must degrade, not crash: %+v", c)
	}

	if c := e.Process("tell me a joke"); c != nil {
		t.Errorf("non-utility query should return nil, got %+v", c)
	}
}

func TestUtilityEngine_Time(t *testing.T) {
	e := NewUtilityEngine()
	e.now = func() time.Time {
		return time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	}

	c := e.Process("hey, what is the time right now?")
	if c == nil || !strings.Contains(c.Body, "Monday, March 2, 2026") {
		t.Fatalf("time lookup failed: %+v", c)
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	for _, target := range []string{"physics", "chemistry", "biology", "support", "identity"} {
		if _, ok := r.Get(target); !ok {
			t.Errorf("registry missing %s engine", target)
		}
	}
	if _, ok := r.Get("general"); ok {
		t.Error("general must not be an engine; it is the LLM path")
	}
}
