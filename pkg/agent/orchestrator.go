// NetraGPT - conversational chatbot backend
// License: MIT
//
// Copyright (c) 2026 NetraGPT contributors

package agent

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/DMWllc/netragpt/pkg/config"
	"github.com/DMWllc/netragpt/pkg/engines"
	"github.com/DMWllc/netragpt/pkg/knowledge"
	"github.com/DMWllc/netragpt/pkg/logger"
	"github.com/DMWllc/netragpt/pkg/memory"
	"github.com/DMWllc/netragpt/pkg/providers"
	"github.com/DMWllc/netragpt/pkg/router"
	"github.com/DMWllc/netragpt/pkg/session"
	"github.com/DMWllc/netragpt/pkg/telemetry"
	"github.com/DMWllc/netragpt/pkg/utils"
)

// ErrEmptyMessage rejects blank input before any session is touched.
var ErrEmptyMessage = errors.New("message is empty")

const systemPrompt = "You are NetraGPT, the assistant for the Netra local-services marketplace. " +
	"Answer briefly and helpfully in plain language. Use the provided context sections when " +
	"they are relevant and ignore them when they are not."

// Fixed reply sets. A choice among them is uniform and deliberately bounded.
var (
	fallbackReplies = []string{
		"I'm not sure I caught that. Could you rephrase it for me?",
		"I don't have a good answer for that one yet. Try asking another way?",
		"Could you give me a bit more detail so I can help?",
	}
	unavailableReplies = []string{
		"I'm temporarily unavailable. Please try again in a moment.",
		"Something went wrong on my side. Give me a moment and ask again.",
	}
	welcomeReplies = []string{
		"Hi! I'm NetraGPT. Ask me about Netra services, science questions, or anything else.",
		"Hello! Fresh session started. What can I help you with today?",
		"Welcome back! I'm ready when you are.",
	}
)

const expiredReply = "Your session has expired. Please start a new conversation."

// Reply is the orchestrator's per-turn result, shared by the HTTP gateway,
// the chat loop, and the REPL.
type Reply struct {
	Text           string
	SessionID      string
	SessionCreated bool
	SessionExpired bool
	EngineUsed     string
	SessionWarning string
	TimeRemaining  int
}

// Orchestrator runs the single per-message control flow every request goes
// through: expiry check, warning check, routing, responder dispatch, memory
// update, response assembly.
type Orchestrator struct {
	store     *session.Store
	registry  *engines.Registry
	utility   engines.Engine
	provider  providers.LLMProvider
	know      *knowledge.Client
	cfg       *config.Config
	telemetry *telemetry.Store
	now       func() time.Time
}

func NewOrchestrator(cfg *config.Config, store *session.Store, registry *engines.Registry, utility engines.Engine, provider providers.LLMProvider, know *knowledge.Client, metrics *telemetry.Store) *Orchestrator {
	return &Orchestrator{
		store:     store,
		registry:  registry,
		utility:   utility,
		provider:  provider,
		know:      know,
		cfg:       cfg,
		telemetry: metrics,
		now:       time.Now,
	}
}

// SetClock overrides the time source. Test hook.
func (o *Orchestrator) SetClock(now func() time.Time) {
	o.now = now
}

// HandleMessage is the full turn state machine. It never returns an error for
// upstream failures; those degrade to a fixed unavailable reply. The only
// error is ErrEmptyMessage for blank input.
func (o *Orchestrator) HandleMessage(ctx context.Context, sessionID, message string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	started := o.now()

	// Inline probabilistic cleanup keeps the registry bounded without a
	// dedicated timer; the cron sweeper covers idle periods.
	if swept := o.store.MaybeSweep(o.cfg.Session.SweepProbability); swept > 0 {
		o.recordMetric("sessions_swept", float64(swept), nil)
	}

	s, created := o.store.GetOrCreate(sessionID)

	if !created && o.store.IsExpired(s.CreatedAt) {
		o.store.Clear(s.ID)
		o.recordMetric("sessions_expired", 1, nil)
		logger.InfoCF("agent", "Session expired", map[string]interface{}{"session_id": s.ID})
		return &Reply{
			Text:           expiredReply,
			SessionID:      s.ID,
			SessionExpired: true,
		}, nil
	}

	remaining := o.store.TimeRemainingMinutes(s.CreatedAt)

	s.Lock()
	defer s.Unlock()

	warning := ""
	if remaining >= 1 && remaining <= o.cfg.Session.WarningMinutes && s.Warnings < o.cfg.Session.MaxWarnings {
		s.Warnings++
		warning = fmt.Sprintf("Heads up: this session ends in about %d minute(s).", remaining)
	}

	s.AppendTurn("user", message, o.now())

	target := router.Route(message)
	text, engineUsed, err := o.respond(ctx, s, target, message, remaining)

	reply := &Reply{
		SessionID:      s.ID,
		SessionCreated: created,
		SessionWarning: warning,
		TimeRemaining:  remaining,
	}

	switch {
	case err != nil:
		// Upstream failure. Record the fallback turn but skip the memory
		// update: there is no well-formed response to extract against.
		logger.ErrorCF("agent", "Responder dispatch failed", map[string]interface{}{
			"session_id": s.ID,
			"target":     string(target),
			"error":      err.Error(),
		})
		reply.Text = pickReply(unavailableReplies)
		s.AppendTurn("assistant", reply.Text, o.now())
		o.recordMetric("turn_errors", 1, map[string]string{"target": string(target)})
	case text == "":
		reply.Text = pickReply(fallbackReplies)
		memory.ExtractAndMerge(s, message)
		memory.RecordCalculation(s, message, reply.Text, o.now())
		s.AppendTurn("assistant", reply.Text, o.now())
	default:
		reply.Text = text
		reply.EngineUsed = engineUsed
		memory.ExtractAndMerge(s, message)
		memory.RecordCalculation(s, message, text, o.now())
		s.AppendTurn("assistant", text, o.now())
	}

	o.recordMetric("chat_turn_ms", float64(o.now().Sub(started).Milliseconds()), map[string]string{
		"target": string(target),
	})
	o.recordMetric("chat_turns", 1, map[string]string{"engine": reply.EngineUsed})

	logger.DebugCF("agent", "Turn completed", map[string]interface{}{
		"session_id": s.ID,
		"target":     string(target),
		"engine":     reply.EngineUsed,
		"preview":    utils.Truncate(reply.Text, 50),
	})

	return reply, nil
}

// respond dispatches to the selected responder. Panics and upstream errors
// are confined here so a single bad turn never crashes the process.
func (o *Orchestrator) respond(ctx context.Context, s *session.Session, target router.Target, message string, remaining int) (text, engineUsed string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, engineUsed = "", ""
			err = fmt.Errorf("responder panic: %v", r)
		}
	}()

	// Calculations and time lookups are cheap and deterministic; consult the
	// utility engine before anything else.
	if o.utility != nil {
		if content := o.utility.Process(message); content != nil {
			return engines.Format(content), o.utility.Name(), nil
		}
	}

	if target != router.TargetGeneral {
		if engine, ok := o.registry.Get(string(target)); ok {
			if content := engine.Process(message); content != nil {
				return engines.Format(content), engine.Name(), nil
			}
		}
		// Outside the engine's competence. Fall through to the general path.
	}

	research := o.research(ctx, s, message)
	domains := router.RelevantDomains(message)
	contextBlock := BuildContext(s, domains, research, remaining)

	messages := []providers.Message{
		{Role: "system", Content: systemPrompt + "\n\n" + contextBlock},
	}
	for _, turn := range s.RecentTurns(10) {
		role := "user"
		if turn.Sender == "assistant" {
			role = "assistant"
		}
		messages = append(messages, providers.Message{Role: role, Content: turn.Text})
	}

	out, err := o.provider.Generate(ctx, messages, providers.GenerateOptions{
		Model:       o.cfg.Provider.Model,
		MaxTokens:   o.cfg.Provider.MaxTokens,
		Temperature: o.cfg.Provider.Temperature,
	})
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(out), "", nil
}

// research runs the external lookup when the message warrants one. A failed
// or disabled lookup is indistinguishable from "no data".
func (o *Orchestrator) research(ctx context.Context, s *session.Session, message string) *knowledge.Result {
	if o.know == nil || !o.cfg.Knowledge.Enabled || !knowledge.ShouldSearch(message) {
		return &knowledge.Result{}
	}
	s.ExternalSearches++
	s.BrowsingSessions++
	return o.know.Search(ctx, message)
}

// StartNewSession discards the caller's current session, if any, and creates
// a fresh one with a randomly chosen welcome line.
func (o *Orchestrator) StartNewSession(currentID string) (*session.Session, string) {
	if strings.TrimSpace(currentID) != "" {
		o.store.Clear(currentID)
	}
	s := o.store.Create()
	o.recordMetric("sessions_started", 1, nil)
	return s, pickReply(welcomeReplies)
}

// ClearHistory resets conversation, memory, and calculation state while
// preserving the session's expiry clock. Idempotent; a missing session is
// not an error.
func (o *Orchestrator) ClearHistory(sessionID string) bool {
	s, ok := o.store.Get(sessionID)
	if !ok {
		return false
	}
	s.Lock()
	s.ResetHistory()
	s.Unlock()
	return true
}

// SessionStatus reports liveness and remaining minutes for a session token.
func (o *Orchestrator) SessionStatus(sessionID string) (active bool, remaining int) {
	s, ok := o.store.Get(sessionID)
	if !ok {
		return false, 0
	}
	if o.store.IsExpired(s.CreatedAt) {
		return false, 0
	}
	return true, o.store.TimeRemainingMinutes(s.CreatedAt)
}

func (o *Orchestrator) recordMetric(name string, value float64, tags map[string]string) {
	if o.telemetry == nil {
		return
	}
	if err := o.telemetry.Record(name, value, tags); err != nil {
		logger.WarnCF("agent", "Failed to record metric", map[string]interface{}{
			"metric": name,
			"error":  err.Error(),
		})
	}
}

func pickReply(set []string) string {
	return set[rand.Intn(len(set))]
}
