package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecorderDrain(t *testing.T) {
	r := NewRecorder()
	assert.Equal(t, []Toast{}, r.Drain())

	r.Notify("Added to wishlist", Short)
	r.Notify("Thank you!", Long)
	assert.Equal(t, 2, r.Pending())

	got := r.Drain()
	assert.Equal(t, []Toast{{"Added to wishlist", Short}, {"Thank you!", Long}}, got)
	assert.Equal(t, 0, r.Pending())
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	n.Notify("Item removed from cart", Short)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "notification", entries[0].Message)
		assert.Equal(t, "Item removed from cart", entries[0].ContextMap()["message"])
	}
}

func TestMultiFansOut(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	Multi{a, Nop{}, b}.Notify("hi", Short)
	assert.Equal(t, 1, a.Pending())
	assert.Equal(t, 1, b.Pending())

	NewLogNotifier(nil).Notify("discarded", Short)
}
