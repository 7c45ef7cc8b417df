package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack(t *testing.T) {
	s := NewStack()
	l := stackListener{}
	s.AddListener(&l)

	a, b := &component{name: "invoice"}, &component{name: "details"}
	s.Push(a)
	s.Push(b)
	assert.Equal(t, []string{"invoice", "details"}, s.Flatten())
	assert.True(t, a.stopped)
	assert.Equal(t, a, s.Previous())

	c, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, b, c)
	assert.True(t, b.stopped)
	assert.True(t, s.IsLast())
	assert.Equal(t, "invoice", l.top)

	s.Reset(&component{name: "dashboard"})
	assert.Equal(t, []string{"dashboard"}, s.Flatten())

	s.Clear()
	assert.True(t, s.Empty())
	assert.Nil(t, s.Top())
	_, ok = s.Pop()
	assert.False(t, ok)
}

type component struct {
	name    string
	stopped bool
}

func (c *component) Name() string {
	return c.name
}

func (c *component) Stop() {
	c.stopped = true
}

type stackListener struct {
	top string
}

func (*stackListener) StackPushed(Component) {}

func (*stackListener) StackPopped(_, _ Component) {}

func (l *stackListener) StackTop(c Component) {
	l.top = c.Name()
}
