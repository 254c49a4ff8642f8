package alg

import "reflect"

type Stack interface {
	Clear()
	Push(int)
	Pop() (int, bool)
	Peek() (int, bool)
	Index(int) (int, bool)
	Size() int
	Slice() []int

	Copy() Stack
	Equal(Stack) bool
}

type StackArray struct {
	Array []int
}

var _ Stack = &StackArray{}

func (s *StackArray) Equal(other Stack) bool {
	return reflect.DeepEqual(s, other)
}

func (s *StackArray) Clear() {
	s.Array = s.Array[0:0]
}

func (s *StackArray) Push(val int) {
	s.Array = append(s.Array, val)
}

func (s *StackArray) Pop() (int, bool) {
	if s.Size() == 0 {
		return 0, false
	}
	retval := s.Array[len(s.Array)-1]
	s.Array = s.Array[:len(s.Array)-1]
	return retval, true
}

// Index is top-relative: Index(0) is the top of the stack.
func (s *StackArray) Index(index int) (int, bool) {
	if index < 0 || index >= s.Size() {
		return 0, false
	}
	return s.Array[len(s.Array)-1-index], true
}

func (s *StackArray) Peek() (int, bool) {
	result, exists := s.Index(0)
	return result, exists
}

func (s *StackArray) Size() int {
	return len(s.Array)
}

// Slice exposes the backing array bottom-to-top for rendering; callers
// must not mutate it.
func (s *StackArray) Slice() []int {
	return s.Array
}

func (s *StackArray) Copy() Stack {
	newArray := make([]int, len(s.Array), cap(s.Array))
	copy(newArray, s.Array)
	return &StackArray{newArray}
}

func NewStackArray(size int) *StackArray {
	return &StackArray{make([]int, 0, size)}
}
