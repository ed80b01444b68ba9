package eventbus

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetgrip/internal/detent"
	"sheetgrip/internal/transition"
)

func quietBus() EventBus {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPublishIsSynchronousAndOrdered(t *testing.T) {
	b := quietBus()
	var got []string

	b.Subscribe(EventDetentChanged, func(e DomainEvent) {
		got = append(got, "typed:"+e.(DetentChangedEvent).Detent.String())
	})
	b.SubscribeAll(func(e DomainEvent) { got = append(got, "all:"+string(e.Type())) })

	b.Publish(DetentChangedEvent{Detent: detent.Large()})
	b.Publish(SheetDismissedEvent{})

	assert.Equal(t, []string{"typed:large", "all:DetentChanged", "all:SheetDismissed"}, got)
}

func TestUnsubscribe(t *testing.T) {
	b := quietBus()
	first, second := 0, 0

	unsub := b.Subscribe(EventSheetDismissed, func(DomainEvent) { first++ })
	b.Subscribe(EventSheetDismissed, func(DomainEvent) { second++ })

	b.Publish(SheetDismissedEvent{})
	unsub()
	unsub()
	b.Publish(SheetDismissedEvent{})

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestPanickingHandlerDoesNotStopDelivery(t *testing.T) {
	b := quietBus()
	delivered := false

	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, func(DomainEvent) { delivered = true })

	require.NotPanics(t, func() { b.Publish(ErrorEvent{Message: "x"}) })
	assert.True(t, delivered)
}

func TestDelegatePublishesLifecycle(t *testing.T) {
	b := quietBus()
	var types []EventType
	b.SubscribeAll(func(e DomainEvent) { types = append(types, e.Type()) })

	d := NewDelegate(b)
	d.DidPresent(detent.Medium())
	d.DidChangeSelectedDetent(detent.Large())
	d.DidAttemptDismiss()
	d.WillDismiss()
	d.DidDismiss()
	d.Diagnostic(transition.Diagnostic{Op: "gesture ended", State: transition.Settling, Err: errors.New("x")})

	assert.Equal(t, []EventType{
		EventSheetPresented,
		EventDetentChanged,
		EventDismissAttempted,
		EventSheetWillDismiss,
		EventSheetDismissed,
		EventDiagnostic,
	}, types)
}

func TestDelegateShouldDismiss(t *testing.T) {
	d := NewDelegate(quietBus())
	assert.True(t, d.ShouldDismiss())

	d.ShouldDismissFunc = func() bool { return false }
	assert.False(t, d.ShouldDismiss())
}
