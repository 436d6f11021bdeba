package eventbus

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type filerefAllocated struct {
	Fileref string
}

type submissionFailed struct {
	Reason string
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestPublishDispatchesByArgumentType(t *testing.T) {
	t.Parallel()

	bus := NewEventPublisher(quietLogger())

	var got []string
	bus.Subscribe(func(e filerefAllocated) {
		got = append(got, e.Fileref)
	})
	bus.Subscribe(func(e submissionFailed) {
		t.Errorf("wrong handler invoked for %v", e)
	})

	bus.Publish(filerefAllocated{Fileref: "R0001"})
	bus.Publish(filerefAllocated{Fileref: "R0002"})

	assert.Equal(t, []string{"R0001", "R0002"}, got)
	assert.Equal(t, 2, bus.SubscribersCount())
}

func TestPublishSurvivesPanickingHandler(t *testing.T) {
	t.Parallel()

	bus := NewEventPublisher(quietLogger())

	calls := 0
	bus.Subscribe(func(filerefAllocated) { panic("boom") })
	bus.Subscribe(func(filerefAllocated) { calls++ })

	assert.NotPanics(t, func() {
		bus.Publish(filerefAllocated{Fileref: "R0001"})
	})
	assert.Equal(t, 1, calls, "later handlers still run")
}

func TestSubscribeRejectsNonFunction(t *testing.T) {
	t.Parallel()

	bus := NewEventPublisher(quietLogger())
	assert.Panics(t, func() { bus.Subscribe("not a handler") })
}

func TestPublishEReportsNoSubscribers(t *testing.T) {
	t.Parallel()

	bus := NewEventPublisher(quietLogger()).(EventBusWithError)
	err := bus.PublishE(filerefAllocated{})
	require.ErrorIs(t, err, ErrNoSubscribers)
}

func TestPublishECollectsHandlerErrors(t *testing.T) {
	t.Parallel()

	bus := NewEventPublisher(quietLogger()).(EventBusWithError)

	sentinel := errors.New("handler failed")
	bus.Subscribe(func(submissionFailed) error { return sentinel })
	bus.Subscribe(func(submissionFailed) error { return nil })
	bus.Subscribe(func(filerefAllocated) {})

	err := bus.PublishE(submissionFailed{Reason: "bad date"})
	require.ErrorIs(t, err, sentinel)

	require.NoError(t, bus.PublishE(filerefAllocated{}), "void handlers are fine")
}

func TestPublishEValidatesReturnSignature(t *testing.T) {
	t.Parallel()

	bus := NewEventPublisher(quietLogger()).(EventBusWithError)
	bus.Subscribe(func(filerefAllocated) string { return "nope" })

	err := bus.PublishE(filerefAllocated{})
	require.ErrorIs(t, err, ErrInvalidHandlerReturn)
}

func TestClearDropsAllSubscribers(t *testing.T) {
	t.Parallel()

	bus := NewEventPublisher(quietLogger())
	bus.Subscribe(func(filerefAllocated) {})
	bus.Subscribe(func(submissionFailed) {})
	require.Equal(t, 2, bus.SubscribersCount())

	bus.Clear()
	assert.Equal(t, 0, bus.SubscribersCount())
}
