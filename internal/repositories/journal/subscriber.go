package journal

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/idgen"
)

// subscriberPriority runs the journal after any handler that may cancel
const subscriberPriority = 100

// SubscriberConfig wires a journal to an event bus
type SubscriberConfig struct {
	Bus        events.EventBus
	Repository Repository
	SessionID  string
	IDs        idgen.Generator
	Clock      clock.Clock
}

// Subscribe records every dispatch and status activation published on the
// bus. It returns the subscription ids. Journal write failures are logged
// and never fail the publisher.
func Subscribe(cfg *SubscriberConfig) []string {
	record := func(kind string) events.HandlerFunc {
		return func(ctx context.Context, e events.Event) error {
			entry := entryFromEvent(kind, e)
			entry.ID = cfg.IDs.Generate()
			entry.At = cfg.Clock.Now()

			if _, err := cfg.Repository.Append(ctx, &AppendInput{
				SessionID: cfg.SessionID,
				Entry:     entry,
			}); err != nil {
				slog.Warn("failed to journal event",
					"session_id", cfg.SessionID,
					"event_type", e.Type(),
					"error", err)
			}
			return nil
		}
	}

	return []string{
		cfg.Bus.SubscribeFunc(entities.EventDispatched, subscriberPriority, record(KindDispatched)),
		cfg.Bus.SubscribeFunc(entities.EventStatusActivated, subscriberPriority, record(KindActivated)),
	}
}

func entryFromEvent(kind string, e events.Event) *Entry {
	entry := &Entry{Kind: kind}

	var sourceID string
	if src := e.Source(); src != nil {
		sourceID = src.GetID()
		entry.Character = sourceID
	}
	if tgt := e.Target(); tgt != nil && tgt.GetID() != sourceID {
		entry.Target = tgt.GetID()
	}

	ctx := e.Context()
	if ctx == nil {
		return entry
	}
	if name := stringValue(ctx, entities.EventKeyCharacter); name != "" {
		entry.Character = name
	}
	entry.Ability = stringValue(ctx, entities.EventKeyAbility)
	entry.Variant = stringValue(ctx, entities.EventKeyVariant)
	entry.Param = stringValue(ctx, entities.EventKeyParam)
	entry.VitaDelta = intValue(ctx, entities.EventKeyVitaDelta)
	entry.ManaDelta = intValue(ctx, entities.EventKeyManaDelta)

	return entry
}

func stringValue(ctx events.Context, key string) string {
	v, ok := ctx.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func intValue(ctx events.Context, key string) int {
	v, ok := ctx.Get(key)
	if !ok {
		return 0
	}
	n, _ := v.(int)
	return n
}
