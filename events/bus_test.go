package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishReachesSubscribers(t *testing.T) {
	b := NewBus()

	var got []Entity
	cancel := b.Subscribe(func(e Entity) { got = append(got, e) })
	defer cancel()

	b.Publish(Favorites)
	b.Publish(Quotes)

	assert.Equal(t, []Entity{Favorites, Quotes}, got)
}

func TestBus_CancelStopsDelivery(t *testing.T) {
	b := NewBus()

	var n int
	cancel := b.Subscribe(func(Entity) { n++ })

	b.Publish(Settings)
	cancel()
	b.Publish(Settings)

	assert.Equal(t, 1, n)
}

func TestBus_NilBusIsNoop(t *testing.T) {
	var b *Bus
	b.Publish(Authors) // must not panic
}
