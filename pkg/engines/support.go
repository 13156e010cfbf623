package engines

import (
	"strings"

	"github.com/DMWllc/netragpt/pkg/textmatch"
)

// SupportEngine handles customer-service intents with canned resolution
// flows. It answers anything routed to it: support is a terminal dispatch
// target, so unlike the science engines it falls back to a generic help
// response instead of nil.
type SupportEngine struct {
	flows []topicEntry
}

func NewSupportEngine() *SupportEngine {
	return &SupportEngine{
		flows: []topicEntry{
			{
				keywords: textmatch.KeywordSet{"billing", "payment", "invoice", "charged"},
				content: Content{
					Title: "Billing Help",
					Body:  "Sorry about the billing trouble. Here is how to get it sorted:",
					Steps: []string{
						"Open Account → Billing to review recent charges",
						"Disputed charges are reversed within 5-7 business days once flagged",
						"Reply with the invoice number if you'd like me to escalate",
					},
					Footnote: "A support specialist can take over this conversation at any time.",
				},
			},
			{
				keywords: textmatch.KeywordSet{"refund", "cancel", "return"},
				content: Content{
					Title: "Refunds and Cancellations",
					Body:  "You can cancel an active booking or request a refund from the order page.",
					Steps: []string{
						"Refunds for cancellations made 24h in advance are processed in full",
						"Later cancellations may carry a vendor fee",
					},
				},
			},
			{
				keywords: textmatch.KeywordSet{"login", "password", "account", "sign in"},
				content: Content{
					Title: "Account Access",
					Body:  "Use the password reset link on the sign-in page. If the reset mail never arrives, check spam and confirm the address on file.",
				},
			},
			{
				keywords: textmatch.KeywordSet{"order", "delivery", "status"},
				content: Content{
					Title: "Order Status",
					Body:  "Track any order under My Orders. Delivery windows update live once a vendor accepts the job.",
				},
			},
		},
	}
}

func (e *SupportEngine) Name() string { return "support" }

func (e *SupportEngine) Process(message string) *Content {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	for _, flow := range e.flows {
		if flow.keywords.ContainsAny(message) {
			c := flow.content
			return &c
		}
	}
	return &Content{
		Title: "Customer Support",
		Body:  "I can help with billing, refunds, account access, and order status. Tell me a bit more about the issue and I'll point you to the right fix.",
	}
}

// IdentityEngine answers questions about the assistant and the company.
type IdentityEngine struct{}

func NewIdentityEngine() *IdentityEngine { return &IdentityEngine{} }

func (e *IdentityEngine) Name() string { return "identity" }

func (e *IdentityEngine) Process(message string) *Content {
	if strings.TrimSpace(message) == "" {
		return nil
	}
	return &Content{
		Title: "About NetraGPT",
		Body: "I'm NetraGPT, the assistant for the Netra services marketplace. " +
			"I answer science questions, handle support issues, run quick calculations, and help you find and book services.",
	}
}
