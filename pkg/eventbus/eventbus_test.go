package eventbus_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/medinsure/underwriting-admin/pkg/eventbus"
)

type importCompleted struct {
	BatchNo string
}

func TestPublish_DispatchesToMatchingHandler(t *testing.T) {
	bus := eventbus.NewEventPublisher(logrus.New())

	var got []string
	bus.Subscribe(func(e importCompleted) {
		got = append(got, e.BatchNo)
	})
	bus.Subscribe(func(n int) {
		t.Fatal("handler with mismatched signature must not fire")
	})

	bus.Publish(importCompleted{BatchNo: "IMP20250101000000deadbeef"})

	assert.Equal(t, []string{"IMP20250101000000deadbeef"}, got)
}

func TestPublish_RecoversHandlerPanic(t *testing.T) {
	bus := eventbus.NewEventPublisher(logrus.New())

	fired := 0
	bus.Subscribe(func(e importCompleted) {
		panic("boom")
	})
	bus.Subscribe(func(e importCompleted) {
		fired++
	})

	assert.NotPanics(t, func() {
		bus.Publish(importCompleted{BatchNo: "x"})
	})
	assert.Equal(t, 1, fired)
}

func TestUnsubscribeAndClear(t *testing.T) {
	bus := eventbus.NewEventPublisher(logrus.New())

	handler := func(e importCompleted) {}
	bus.Subscribe(handler)
	assert.Equal(t, 1, bus.SubscribersCount())

	bus.Unsubscribe(handler)
	assert.Equal(t, 0, bus.SubscribersCount())

	bus.Subscribe(handler)
	bus.Subscribe(func(e importCompleted) {})
	bus.Clear()
	assert.Equal(t, 0, bus.SubscribersCount())
}

func TestMatchSignature(t *testing.T) {
	assert.True(t, eventbus.MatchSignature(func(e importCompleted) {}, []interface{}{importCompleted{}}))
	assert.False(t, eventbus.MatchSignature(func(e importCompleted) {}, []interface{}{42}))
	assert.False(t, eventbus.MatchSignature(42, []interface{}{importCompleted{}}))
	assert.False(t, eventbus.MatchSignature(func(a, b importCompleted) {}, []interface{}{importCompleted{}}))
}
