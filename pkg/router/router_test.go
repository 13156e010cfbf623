package router

import "testing"

func TestRoute_PriorityOrder(t *testing.T) {
	cases := []struct {
		message string
		want    Target
	}{
		// support outranks science even when science terms co-occur
		{"urgent netra billing issue about projectile motion", TargetSupport},
		{"my netra billing issue with physics homework", TargetSupport},
		{"explain projectile motion", TargetPhysics},
		{"what is the electron configuration of oxygen", TargetChemistry},
		{"how does photosynthesis work", TargetBiology},
		{"who are you exactly", TargetIdentity},
		{"tell me a story about pirates", TargetGeneral},
		{"", TargetGeneral},
	}

	for _, tc := range cases {
		if got := Route(tc.message); got != tc.want {
			t.Errorf("Route(%q) = %s, want %s", tc.message, got, tc.want)
		}
	}
}

func TestRoute_CaseInsensitive(t *testing.T) {
	if got := Route("REFUND my PAYMENT"); got != TargetSupport {
		t.Errorf("Route = %s, want support", got)
	}
}

func TestRelevantDomains_Default(t *testing.T) {
	got := RelevantDomains("zzz qqq xyzzy")
	if len(got) != 1 || got[0].Tag != DefaultDomain.Tag {
		t.Fatalf("expected only the default domain, got %v", got)
	}
}

func TestRelevantDomains_TopThree(t *testing.T) {
	msg := "calculate the energy formula, explain how does gravity work, book a service appointment, latest news today, travel recipe"
	got := RelevantDomains(msg)
	if len(got) != 3 {
		t.Fatalf("expected 3 domains, got %d (%v)", len(got), got)
	}
}

func TestRelevantDomains_MarketplaceBoost(t *testing.T) {
	// one marketplace keyword + service boost must outrank two plain hits
	got := RelevantDomains("book something about energy theory")
	if got[0].Tag != "marketplace" {
		t.Errorf("top domain = %s, want marketplace", got[0].Tag)
	}
}

func TestRelevantDomains_MathBoost(t *testing.T) {
	got := RelevantDomains("solve this")
	if got[0].Tag != "calculations" {
		t.Errorf("top domain = %s, want calculations", got[0].Tag)
	}
}

// soft ranking and hard dispatch stay distinct: a support message still gets
// relevance flavor, and relevance never changes dispatch
func TestClassifiersAreIndependent(t *testing.T) {
	msg := "refund my booking please"
	if Route(msg) != TargetSupport {
		t.Fatal("dispatch must pick support")
	}
	domains := RelevantDomains(msg)
	if len(domains) == 0 {
		t.Fatal("relevance must still rank domains")
	}
	if domains[0].Tag != "marketplace" {
		t.Errorf("top relevance domain = %s, want marketplace", domains[0].Tag)
	}
}
