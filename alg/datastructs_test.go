package alg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackArray(t *testing.T) {
	s := NewStackArray(4)
	assert.Equal(t, 0, s.Size())

	_, exists := s.Pop()
	assert.False(t, exists)
	_, exists = s.Peek()
	assert.False(t, exists)

	s.Push(-1)
	s.Push(0)
	s.Push(1)
	assert.Equal(t, 3, s.Size())

	top, exists := s.Peek()
	assert.True(t, exists)
	assert.Equal(t, 1, top)

	// Index is top-relative
	val, _ := s.Index(0)
	assert.Equal(t, 1, val)
	val, _ = s.Index(2)
	assert.Equal(t, -1, val)
	_, exists = s.Index(3)
	assert.False(t, exists)
	_, exists = s.Index(-1)
	assert.False(t, exists)

	popped, exists := s.Pop()
	assert.True(t, exists)
	assert.Equal(t, 1, popped)
	assert.Equal(t, 2, s.Size())

	assert.Equal(t, []int{-1, 0}, s.Slice())

	s.Clear()
	assert.Equal(t, 0, s.Size())
}

func TestStackArrayCopy(t *testing.T) {
	s := NewStackArray(4)
	s.Push(-1)
	s.Push(0)

	c := s.Copy()
	assert.True(t, s.Equal(c))

	c.Push(1)
	assert.Equal(t, 2, s.Size())
	assert.Equal(t, 3, c.Size())
	assert.False(t, s.Equal(c))

	s.Pop()
	val, _ := c.Index(2)
	assert.Equal(t, -1, val)
}
