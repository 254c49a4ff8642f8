package generator

import (
	"fmt"
	"strings"

	"yag/alg"
	"yag/nlp/types"
	"yag/util"
)

const (
	// The virtual root node; it sits at the bottom of the stack for the
	// entire generation and is never materialized.
	ROOT_NODE = -1

	// Sentinel for "no such element" returned by stack and tree
	// accessors; distinct from any node id including the root.
	NO_NODE = -2

	// Root label value used when the label map has no ROOT entry.
	DEFAULT_ROOT_LABEL = -1
)

// A GeneratorState holds the mutable state of one generation path: the
// stack of extensible nodes, the partial tree (head/label/tag per node)
// and the word sequence. Nodes are numbered in creation order; node i
// exists once the i-th Add has been applied. The state carries no
// action legality logic - that belongs to the transition system.
type GeneratorState struct {
	// Bound input, read-only, shared across clones. May be empty when
	// generating without a reference sentence.
	sent types.Sentence

	// Vocabularies, read-only, shared across clones.
	ELabel, ETag, EWord *util.EnumSet

	stack alg.Stack

	// head[i], label[i], tag[i] are set atomically when node i is
	// created; word grows independently and may trail head by one.
	head, label, tag []int
	word             []int

	rootLabel int
	score     float64

	keepHistory bool
	history     []Action
}

// NewGeneratorState creates a state bound to a read-only input sentence
// and shared vocabularies, with the root pushed onto the stack. The
// root label is resolved through the label map up front; a label map
// without a ROOT entry yields the default root label.
func NewGeneratorState(sent types.Sentence, labels, tags, words *util.EnumSet, keepHistory bool) *GeneratorState {
	capHint := len(sent)
	if capHint == 0 {
		capHint = 8
	}
	s := &GeneratorState{
		sent:        sent,
		ELabel:      labels,
		ETag:        tags,
		EWord:       words,
		stack:       alg.NewStackArray(capHint),
		head:        make([]int, 0, capHint),
		label:       make([]int, 0, capHint),
		tag:         make([]int, 0, capHint),
		word:        make([]int, 0, capHint),
		rootLabel:   labels.IndexOfOrDefault(types.ROOT_LABEL, DEFAULT_ROOT_LABEL),
		keepHistory: keepHistory,
	}
	s.stack.Push(ROOT_NODE)
	return s
}

func (s *GeneratorState) RootLabel() int {
	return s.rootLabel
}

// NumLabels reports the label id space size, counting the synthetic
// root label when it is absent from the label map.
func (s *GeneratorState) NumLabels() int {
	if s.rootLabel == DEFAULT_ROOT_LABEL {
		return s.ELabel.Len() + 1
	}
	return s.ELabel.Len()
}

// NumNodes returns the number of created nodes.
func (s *GeneratorState) NumNodes() int {
	return len(s.head)
}

// NextNode is the id the next Add will assign.
func (s *GeneratorState) NextNode() int {
	return len(s.head)
}

func (s *GeneratorState) Score() float64 {
	return s.score
}

func (s *GeneratorState) SetScore(score float64) {
	s.score = score
}

func (s *GeneratorState) AddScore(delta float64) {
	s.score += delta
}

func (s *GeneratorState) KeepsHistory() bool {
	return s.keepHistory
}

func (s *GeneratorState) History() []Action {
	return s.history
}

func (s *GeneratorState) appendHistory(action Action) {
	if s.keepHistory {
		s.history = append(s.history, action)
	}
}

// HistoryString renders the recorded actions as a comma-joined list,
// used in panic messages and traces.
func (s *GeneratorState) HistoryString() string {
	parts := make([]string, len(s.history))
	for i, action := range s.history {
		parts[i] = fmt.Sprintf("%d", int(action))
	}
	return strings.Join(parts, ",")
}

func (s *GeneratorState) Push(index int) {
	s.stack.Push(index)
}

// Pop removes and returns the top of the stack. The root must stay on
// the stack until the state is terminal, so popping a single-element
// stack is a caller error: continuing with the root gone would corrupt
// the tree invariant, so it fails loudly rather than returning a
// sentinel.
func (s *GeneratorState) Pop() int {
	if s.stack.Size() <= 1 {
		panic("pop would remove the root from the generation stack, history: " + s.HistoryString())
	}
	result, _ := s.stack.Pop()
	return result
}

func (s *GeneratorState) Top() int {
	if s.stack.Size() <= 1 {
		panic("top of a rootless generation stack, history: " + s.HistoryString())
	}
	result, _ := s.stack.Peek()
	return result
}

// Stack returns the element at the given position from the top;
// Stack(0) is the top. Returns NO_NODE when no such position exists.
func (s *GeneratorState) Stack(position int) int {
	result, exists := s.stack.Index(position)
	if !exists {
		return NO_NODE
	}
	return result
}

func (s *GeneratorState) StackSize() int {
	return s.stack.Size()
}

// Head returns the parent of a node; the root's head is the root
// itself by convention. Out-of-range nodes map to NO_NODE so that
// navigation chains stay total.
func (s *GeneratorState) Head(index int) int {
	if index == ROOT_NODE {
		return ROOT_NODE
	}
	if index < 0 || index >= len(s.head) {
		return NO_NODE
	}
	return s.head[index]
}

// Label returns the relation of a node to its head; the root carries
// the root label.
func (s *GeneratorState) Label(index int) int {
	if index == ROOT_NODE {
		return s.rootLabel
	}
	if index < 0 || index >= len(s.label) {
		return NO_NODE
	}
	return s.label[index]
}

func (s *GeneratorState) Tag(index int) int {
	if index < 0 || index >= len(s.tag) {
		return NO_NODE
	}
	return s.tag[index]
}

func (s *GeneratorState) Word(index int) int {
	if index < 0 || index >= len(s.word) {
		return NO_NODE
	}
	return s.word[index]
}

// Parent returns the ancestor of a node n levels up, NO_NODE when the
// walk leaves the tree.
func (s *GeneratorState) Parent(index, n int) int {
	if index < ROOT_NODE || index >= len(s.head) {
		return NO_NODE
	}
	for ; n > 0; n-- {
		index = s.Head(index)
		if index == NO_NODE {
			return NO_NODE
		}
	}
	return index
}

// LeftmostChild returns the leftmost child of a node n levels down,
// scanning created nodes from the start. NO_NODE when no child exists.
func (s *GeneratorState) LeftmostChild(index, n int) int {
	if index < ROOT_NODE || index >= len(s.head) {
		return NO_NODE
	}
	for ; n > 0; n-- {
		i := ROOT_NODE
		for ; i < index; i++ {
			if s.Head(i) == index {
				break
			}
		}
		if i == index {
			return NO_NODE
		}
		index = i
	}
	return index
}

// RightmostChild returns the rightmost child of a node n levels down,
// scanning created nodes backward from the end.
func (s *GeneratorState) RightmostChild(index, n int) int {
	if index < ROOT_NODE || index >= len(s.head) {
		return NO_NODE
	}
	for ; n > 0; n-- {
		i := len(s.head) - 1
		for ; i > index; i-- {
			if s.Head(i) == index {
				break
			}
		}
		if i == index {
			return NO_NODE
		}
		index = i
	}
	return index
}

// LeftSibling returns the n-th sibling to the left of a node, scanning
// for created nodes sharing its head. The root has no siblings.
func (s *GeneratorState) LeftSibling(index, n int) int {
	if index < ROOT_NODE || index >= len(s.head) {
		return NO_NODE
	}
	if index == ROOT_NODE && n > 0 {
		return NO_NODE
	}
	i := index
	for n > 0 {
		i--
		if i == ROOT_NODE {
			return NO_NODE
		}
		if s.Head(i) == s.Head(index) {
			n--
		}
	}
	return i
}

// RightSibling returns the n-th sibling to the right of a node.
func (s *GeneratorState) RightSibling(index, n int) int {
	if index < ROOT_NODE || index >= len(s.head) {
		return NO_NODE
	}
	if index == ROOT_NODE && n > 0 {
		return NO_NODE
	}
	i := index
	for n > 0 {
		i++
		if i == len(s.head) {
			return NO_NODE
		}
		if s.Head(i) == s.Head(index) {
			n--
		}
	}
	return i
}

// MissingWord reports whether the most recently created node has no
// word yet; while true the only legal action type is WORD.
func (s *GeneratorState) MissingWord() bool {
	return len(s.head) > len(s.word)
}

// Add creates a new node as a child of the current top of stack and
// pushes it. The node's head, label and tag are fixed here, once, for
// good. The first Add attaches to the root itself.
func (s *GeneratorState) Add(label, tag int) {
	s0, exists := s.stack.Peek()
	if !exists {
		panic("add on an empty generation stack, history: " + s.HistoryString())
	}
	s.stack.Push(s.NextNode())
	s.head = append(s.head, s0)
	s.label = append(s.label, label)
	s.tag = append(s.tag, tag)
}

// AddWord assigns a word to the most recently created node. The strict
// Add/Word alternation means an append suffices; no index bookkeeping.
func (s *GeneratorState) AddWord(word int) {
	if !s.MissingWord() {
		panic("add word without a wordless node, history: " + s.HistoryString())
	}
	s.word = append(s.word, word)
}

// GetToken returns the bound input token at an index, the synthetic
// root token for the root, and a zero token otherwise.
func (s *GeneratorState) GetToken(index int) types.Token {
	if index == ROOT_NODE {
		return types.Token{Head: types.ROOT_HEAD}
	}
	if index < 0 || index >= len(s.sent) {
		return types.Token{}
	}
	return s.sent[index]
}

// Copy deep-copies every mutable field; the input sentence and the
// vocabularies are shared references. After Copy the two states evolve
// fully independently.
func (s *GeneratorState) Copy() *GeneratorState {
	newState := &GeneratorState{
		sent:        s.sent,
		ELabel:      s.ELabel,
		ETag:        s.ETag,
		EWord:       s.EWord,
		stack:       s.stack.Copy(),
		head:        make([]int, len(s.head), cap(s.head)),
		label:       make([]int, len(s.label), cap(s.label)),
		tag:         make([]int, len(s.tag), cap(s.tag)),
		word:        make([]int, len(s.word), cap(s.word)),
		rootLabel:   s.rootLabel,
		score:       s.score,
		keepHistory: s.keepHistory,
	}
	copy(newState.head, s.head)
	copy(newState.label, s.label)
	copy(newState.tag, s.tag)
	copy(newState.word, s.word)
	if len(s.history) > 0 {
		newState.history = make([]Action, len(s.history))
		copy(newState.history, s.history)
	}
	return newState
}

func (s *GeneratorState) Equal(otherEq util.Equaler) bool {
	other, ok := otherEq.(*GeneratorState)
	if !ok {
		return false
	}
	if s.StackSize() != other.StackSize() ||
		len(s.head) != len(other.head) ||
		len(s.word) != len(other.word) {
		return false
	}
	for i := range s.head {
		if s.head[i] != other.head[i] || s.label[i] != other.label[i] || s.tag[i] != other.tag[i] {
			return false
		}
	}
	for i := range s.word {
		if s.word[i] != other.word[i] {
			return false
		}
	}
	for i := 0; i < s.StackSize(); i++ {
		if s.Stack(i) != other.Stack(i) {
			return false
		}
	}
	return true
}

// LabelAsString resolves a label id; the root label resolves to the
// ROOT string even when absent from the label map, anything else
// outside the map resolves to the empty string.
func (s *GeneratorState) LabelAsString(label int) string {
	if label == s.rootLabel {
		return types.ROOT_LABEL
	}
	return s.ELabel.ValueOf(label)
}

func (s *GeneratorState) TagAsString(tag int) string {
	return s.ETag.ValueOf(tag)
}

func (s *GeneratorState) WordAsString(word int) string {
	return s.EWord.ValueOf(word)
}

// CreateDocument materializes the generated tree as an output sentence:
// one token per created node in id order, ids resolved to strings.
// Tokens attached to the virtual root keep Head = -1; with
// rewriteRootLabels their label string is rewritten to the root label.
func (s *GeneratorState) CreateDocument(rewriteRootLabels bool) types.Sentence {
	sent := make(types.Sentence, 0, s.NumNodes())
	for i := 0; i < s.NumNodes(); i++ {
		token := types.Token{
			Label: s.LabelAsString(s.Label(i)),
			Tag:   s.TagAsString(s.Tag(i)),
			Word:  s.WordAsString(s.Word(i)),
			Head:  s.Head(i),
		}
		if token.Head == ROOT_NODE && rewriteRootLabels {
			token.Label = s.LabelAsString(s.rootLabel)
		}
		sent = append(sent, token)
	}
	return sent
}

func (s *GeneratorState) tokenWord(index int) string {
	if index >= 0 && index < len(s.word) {
		return s.WordAsString(s.word[index])
	}
	return s.GetToken(index).Word
}

// String renders the stack bottom-to-top as word strings with the root
// (or any wordless element) shown as the root label, followed by the
// not-yet-generated remainder of the bound input. Diagnostic only.
func (s *GeneratorState) String() string {
	parts := make([]string, 0, s.StackSize())
	for i := s.StackSize() - 1; i >= 0; i-- {
		word := s.tokenWord(s.Stack(i))
		if word == "" {
			word = types.ROOT_LABEL
		}
		parts = append(parts, word)
	}
	rendered := "[" + strings.Join(parts, " ") + "]"
	for i := s.NextNode(); i < len(s.sent); i++ {
		rendered += " " + s.sent[i].Word
	}
	return rendered
}
