package sse_test

import (
	"testing"

	"github.com/Giulia1955/Trabalho-Computacional/internal/sse"
	"github.com/stretchr/testify/assert"
)

func TestHub_PublishSubscribe(t *testing.T) {
	h := sse.NewHub(2)
	a, cancelA := h.Subscribe("run")
	b, cancelB := h.Subscribe("run")
	other, cancelOther := h.Subscribe("other")
	defer cancelOther()
	assert.Equal(t, 2, h.Subscribers("run"))

	h.Publish("run", "hello")
	assert.Equal(t, "hello", <-a)
	assert.Equal(t, "hello", <-b)
	assert.Empty(t, other)

	cancelA()
	assert.Equal(t, 1, h.Subscribers("run"))
	cancelB()
	assert.Equal(t, 0, h.Subscribers("run"))
}

// TestHub_DropsWhenFull checks that a slow subscriber never blocks Publish.
func TestHub_DropsWhenFull(t *testing.T) {
	h := sse.NewHub(1)
	ch, cancel := h.Subscribe("run")
	defer cancel()

	h.Publish("run", "first")
	h.Publish("run", "second")
	assert.Equal(t, "first", <-ch)
	assert.Empty(t, ch)
}
