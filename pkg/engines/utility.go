package engines

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// UtilityEngine resolves special queries that deserve an instant local
// answer: arithmetic and time lookups. It is consulted before the general
// LLM path rather than being a dispatch target of its own.
type UtilityEngine struct {
	now func() time.Time
}

func NewUtilityEngine() *UtilityEngine {
	return &UtilityEngine{now: time.Now}
}

func (e *UtilityEngine) Name() string { return "utility" }

var (
	percentOfRegex = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:%|percent)\s+of\s+(\d+(?:\.\d+)?)`)
	arithmeticExpr = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([+\-*/x×÷])\s*(\d+(?:\.\d+)?)`)
	timeAskRegex   = regexp.MustCompile(`(?i)\b(?:what(?:'s| is) the time|current time|time is it|today's date|what day is)\b`)
)

func (e *UtilityEngine) Process(message string) *Content {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}

	if m := percentOfRegex.FindStringSubmatch(message); m != nil {
		p, err1 := strconv.ParseFloat(m[1], 64)
		v, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			return &Content{
				Title: "Calculation",
				Body:  fmt.Sprintf("%s%% of %s = %s", m[1], m[2], formatNumber(p/100*v)),
			}
		}
	}

	if m := arithmeticExpr.FindStringSubmatch(message); m != nil {
		if result, ok := applyOperator(m[1], m[2], m[3]); ok {
			return &Content{
				Title: "Calculation",
				Body:  fmt.Sprintf("%s %s %s = %s", m[1], m[2], m[3], result),
			}
		}
	}

	if timeAskRegex.MatchString(message) {
		now := e.now().UTC()
		return &Content{
			Title: "Current Time",
			Body:  now.Format("Monday, January 2, 2006 at 15:04 UTC"),
		}
	}

	return nil
}

func applyOperator(lhs, op, rhs string) (string, bool) {
	a, err1 := strconv.ParseFloat(lhs, 64)
	b, err2 := strconv.ParseFloat(rhs, 64)
	if err1 != nil || err2 != nil {
		return "", false
	}
	var out float64
	switch op {
	case "+":
		out = a + b
	case "-":
		out = a - b
	case "*", "x", "×":
		out = a * b
	case "/", "÷":
		if b == 0 {
			return "undefined (division by zero)", true
		}
		out = a / b
	default:
		return "", false
	}
	return formatNumber(out), true
}

func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
