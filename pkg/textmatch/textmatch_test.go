package textmatch

import "testing"

func TestKeywordSet_ContainsAny(t *testing.T) {
	ks := KeywordSet{"billing", "refund", "order"}

	if !ks.ContainsAny("I have a BILLING problem") {
		t.Error("expected case-insensitive substring match")
	}
	if ks.ContainsAny("tell me about photosynthesis") {
		t.Error("unexpected match")
	}
}

func TestKeywordSet_CountHits(t *testing.T) {
	ks := KeywordSet{"force", "energy", "mass"}

	if got := ks.CountHits("the force acting on a mass"); got != 2 {
		t.Errorf("CountHits = %d, want 2", got)
	}
	if got := ks.CountHits("force force force"); got != 1 {
		t.Errorf("repeated keyword should count once, got %d", got)
	}
}

func TestCuePattern_Capture(t *testing.T) {
	p := NewCuePattern("my name is", "call me")

	if got := p.Capture("Hello, my name is Asha. Nice to meet you."); got != "asha" {
		t.Errorf("Capture = %q, want %q", got, "asha")
	}
	if got := p.Capture("please call me Ravi!"); got != "ravi" {
		t.Errorf("Capture = %q, want %q", got, "ravi")
	}
	if got := p.Capture("what is your name?"); got != "" {
		t.Errorf("Capture on non-matching text = %q, want empty", got)
	}
}

func TestCuePattern_StopsAtSentenceEnd(t *testing.T) {
	p := NewCuePattern("i live in")

	got := p.Capture("I live in Pune, and I work remotely.")
	if got != "pune" {
		t.Errorf("Capture = %q, want %q", got, "pune")
	}
}

func TestIsLikelyQuestion(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"what is gravity", true},
		{"is this refundable?", true},
		{"my name is Asha", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsLikelyQuestion(tc.text); got != tc.want {
			t.Errorf("IsLikelyQuestion(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestTopicPrefix(t *testing.T) {
	if got := TopicPrefix("Tell Me About Quantum Mechanics And Also Relativity Theory", 40); len([]rune(got)) != 40 {
		t.Errorf("prefix length = %d, want 40", len([]rune(got)))
	}
	if got := TopicPrefix("  Short  ", 40); got != "short" {
		t.Errorf("TopicPrefix = %q, want %q", got, "short")
	}
}
