package agent

import (
	"context"
	"errors"

	"github.com/DMWllc/netragpt/pkg/bus"
	"github.com/DMWllc/netragpt/pkg/logger"
)

// Loop consumes inbound channel messages and feeds them through the
// orchestrator, publishing replies back on the bus. HTTP requests bypass the
// loop and call the orchestrator synchronously.
type Loop struct {
	bus  *bus.MessageBus
	orch *Orchestrator
}

func NewLoop(messageBus *bus.MessageBus, orch *Orchestrator) *Loop {
	return &Loop{bus: messageBus, orch: orch}
}

// Run blocks until ctx is cancelled or the bus closes.
func (l *Loop) Run(ctx context.Context) {
	logger.InfoC("agent", "Chat loop started")

	for {
		msg, ok := l.bus.ConsumeInbound(ctx)
		if !ok {
			if ctx.Err() != nil {
				logger.InfoC("agent", "Chat loop stopped")
				return
			}
			continue
		}
		l.handle(ctx, msg)
	}
}

func (l *Loop) handle(ctx context.Context, msg bus.InboundMessage) {
	reply, err := l.orch.HandleMessage(ctx, msg.SessionID, msg.Content)
	if err != nil {
		if !errors.Is(err, ErrEmptyMessage) {
			logger.ErrorCF("agent", "Turn failed", map[string]interface{}{
				"channel": msg.Channel,
				"error":   err.Error(),
			})
		}
		return
	}

	out := bus.OutboundMessage{
		Channel:   msg.Channel,
		ChatID:    msg.ChatID,
		SessionID: reply.SessionID,
		Content:   reply.Text,
	}
	if reply.SessionWarning != "" {
		out.Warnings = []string{reply.SessionWarning}
	}
	l.bus.PublishOutbound(out)
}
