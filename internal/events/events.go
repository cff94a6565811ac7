package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AminePrince/bmsbackend/internal/logger"
)

// Type identifies a financial event published after a successful ledger
// mutation.
type Type string

const (
	PaymentAdded    Type = "payment:added"
	ExpensePaid     Type = "expense:paid"
	InstallmentPaid Type = "installment:paid"
	ClaimUpdated    Type = "claim:updated"
)

// Event is one published occurrence. Payload holds the mutated entity.
type Event struct {
	ID         string
	Type       Type
	OccurredAt time.Time
	Payload    any
}

// Handler receives published events. Handlers run synchronously on the
// publisher's goroutine; slow work belongs behind a channel inside the
// handler.
type Handler func(Event)

// Bus is an in-process observer registry. Subscribers are registered
// explicitly at wiring time; there is no ambient global bus. Publishing
// after a ledger write decouples notifications and logging from the write
// path.
type Bus struct {
	mu   sync.RWMutex
	subs map[Type][]Handler
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Type][]Handler)}
}

// Subscribe registers h for events of type t.
func (b *Bus) Subscribe(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[t] = append(b.subs[t], h)
}

// Publish dispatches the payload to every subscriber of t. A panicking
// handler is logged and skipped; one bad subscriber must not break the
// ledger write that triggered it.
func (b *Bus) Publish(t Type, payload any) {
	b.mu.RLock()
	handlers := b.subs[t]
	b.mu.RUnlock()

	ev := Event{
		ID:         uuid.NewString(),
		Type:       t,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Event handler panicked", "event", string(t), "event_id", ev.ID, "panic", r)
				}
			}()
			h(ev)
		}()
	}
}
