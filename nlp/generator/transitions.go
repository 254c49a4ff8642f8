package generator

import (
	"fmt"

	"yag/util"
)

// An Action is one integer-encoded operation on a GeneratorState. For
// label and tag vocabulary sizes L and T, the encoding partitions the
// integers into three contiguous ranges:
//
//	0           COLLAPSE
//	1 .. L*T    ADD(label, tag) = 1 + label + L*tag
//	> L*T       WORD(word)      = 1 + L*T + word
//
// The encoding is a bijection for fixed L and T; it is not stable
// across vocabulary changes, so a state and its transition system must
// be built against the same vocabularies.
type Action int

// Action types.
const (
	COLLAPSE = iota
	ADD
	WORD
)

// A TransitionSystem is the operator set over generation states: action
// encoding, legality, application, termination and diagnostics. It is
// stateless apart from the vocabulary sizes captured at construction.
type TransitionSystem interface {
	CollapseAction() Action
	AddAction(label, tag int) Action
	WordAction(word int) Action

	ActionType(action Action) int
	Label(action Action) int
	Tag(action Action) int
	Word(action Action) int

	NumActionTypes() int
	NumActions() int
	TransitionTypes() []string

	IsAllowedAction(action Action, state *GeneratorState) bool
	PerformAction(action Action, state *GeneratorState)
	PerformActionWithoutHistory(action Action, state *GeneratorState)
	GetDefaultAction(state *GeneratorState) Action

	YieldTransitions(state *GeneratorState) chan Action
	GetTransitions(state *GeneratorState) []Action

	IsDeterministicState(state *GeneratorState) bool
	IsFinalState(state *GeneratorState) bool

	ChildIndex(state *GeneratorState, action Action) int
	ParentIndex(state *GeneratorState, action Action) int

	ActionAsString(action Action, state *GeneratorState) string
	Name() string
}

// The transition system registry maps names to constructors; it is an
// explicit table built at init time.
var transitionSystems = make(map[string]func(labels, tags, words *util.EnumSet) TransitionSystem)

func RegisterTransitionSystem(name string, constructor func(labels, tags, words *util.EnumSet) TransitionSystem) {
	if _, exists := transitionSystems[name]; exists {
		panic("transition system already registered: " + name)
	}
	transitionSystems[name] = constructor
}

func NewTransitionSystem(name string, labels, tags, words *util.EnumSet) (TransitionSystem, bool) {
	constructor, exists := transitionSystems[name]
	if !exists {
		return nil, false
	}
	return constructor(labels, tags, words), true
}

func init() {
	RegisterTransitionSystem("generator", NewGeneratorTransitionSystem)
}

// GeneratorTransitionSystem is the COLLAPSE/ADD/WORD transition system:
//   - COLLAPSE pops the finished top of the stack; the node stays in the
//     tree but can gain no further children.
//   - ADD(label, tag) creates a new node as a child of the current top
//     and pushes it.
//   - WORD(word) assigns a word to the newest, still wordless node.
//
// Exactly one action type is legal in any state: WORD while a word is
// missing, otherwise ADD (and COLLAPSE when the stack is deep enough).
type GeneratorTransitionSystem struct {
	numLabels, numTags, numWords int
}

var _ TransitionSystem = &GeneratorTransitionSystem{}

// NewGeneratorTransitionSystem pins the vocabulary sizes; the returned
// system's action encoding is only valid for states built against the
// same vocabularies.
func NewGeneratorTransitionSystem(labels, tags, words *util.EnumSet) TransitionSystem {
	return &GeneratorTransitionSystem{
		numLabels: labels.Len(),
		numTags:   tags.Len(),
		numWords:  words.Len(),
	}
}

func (g *GeneratorTransitionSystem) CollapseAction() Action {
	return Action(COLLAPSE)
}

func (g *GeneratorTransitionSystem) AddAction(label, tag int) Action {
	return Action(1 + label + g.numLabels*tag)
}

func (g *GeneratorTransitionSystem) WordAction(word int) Action {
	return Action(1 + g.numLabels*g.numTags + word)
}

func (g *GeneratorTransitionSystem) ActionType(action Action) int {
	switch {
	case action == 0:
		return COLLAPSE
	case int(action) <= g.numLabels*g.numTags:
		return ADD
	default:
		return WORD
	}
}

// Label extracts the label from an ADD action, -1 for other actions.
func (g *GeneratorTransitionSystem) Label(action Action) int {
	if action > 0 && int(action) <= g.numLabels*g.numTags {
		return (int(action) - 1) % g.numLabels
	}
	return -1
}

// Tag extracts the tag from an ADD action, -1 for other actions.
func (g *GeneratorTransitionSystem) Tag(action Action) int {
	if action > 0 && int(action) <= g.numLabels*g.numTags {
		return (int(action) - 1) / g.numLabels
	}
	return -1
}

// Word extracts the word from a WORD action, -1 for other actions.
func (g *GeneratorTransitionSystem) Word(action Action) int {
	if int(action) > g.numLabels*g.numTags {
		return int(action) - g.numLabels*g.numTags - 1
	}
	return -1
}

func (g *GeneratorTransitionSystem) NumActionTypes() int {
	return 3
}

func (g *GeneratorTransitionSystem) NumActions() int {
	return 1 + g.numLabels*g.numTags + g.numWords
}

func (g *GeneratorTransitionSystem) TransitionTypes() []string {
	return []string{"COLLAPSE", "ADD-*", "WORD-*"}
}

func (g *GeneratorTransitionSystem) IsAllowedAction(action Action, state *GeneratorState) bool {
	switch g.ActionType(action) {
	case COLLAPSE:
		return g.IsAllowedCollapse(state)
	case ADD:
		return g.IsAllowedAdd(state)
	case WORD:
		return g.IsAllowedWord(state)
	}
	return false
}

// IsAllowedCollapse: the top of the stack may be finished only once it
// has both its tree edge and its word, and never while it is the only
// real node over the root.
func (g *GeneratorTransitionSystem) IsAllowedCollapse(state *GeneratorState) bool {
	return !state.MissingWord() && state.StackSize() > 2
}

func (g *GeneratorTransitionSystem) IsAllowedAdd(state *GeneratorState) bool {
	return !state.MissingWord()
}

func (g *GeneratorTransitionSystem) IsAllowedWord(state *GeneratorState) bool {
	return state.MissingWord()
}

// PerformAction applies an action and records it in the state's
// history when history tracking is on. The action must be legal for
// the state; legality is the caller's responsibility.
func (g *GeneratorTransitionSystem) PerformAction(action Action, state *GeneratorState) {
	g.PerformActionWithoutHistory(action, state)
	state.appendHistory(action)
}

// PerformActionWithoutHistory mutates the state identically to
// PerformAction but never records history; used when replaying or
// scoring without polluting a trace.
func (g *GeneratorTransitionSystem) PerformActionWithoutHistory(action Action, state *GeneratorState) {
	switch g.ActionType(action) {
	case COLLAPSE:
		state.Pop()
	case ADD:
		state.Add(g.Label(action), g.Tag(action))
	case WORD:
		state.AddWord(g.Word(action))
	}
}

func (g *GeneratorTransitionSystem) GetDefaultAction(state *GeneratorState) Action {
	return g.CollapseAction()
}

func (g *GeneratorTransitionSystem) possibleTransitions(state *GeneratorState, transitions chan Action) {
	if state.MissingWord() {
		for word := 0; word < g.numWords; word++ {
			transitions <- g.WordAction(word)
		}
	} else {
		if state.StackSize() > 2 {
			transitions <- g.CollapseAction()
		}
		for tag := 0; tag < g.numTags; tag++ {
			for label := 0; label < g.numLabels; label++ {
				transitions <- g.AddAction(label, tag)
			}
		}
	}
	close(transitions)
}

func (g *GeneratorTransitionSystem) YieldTransitions(state *GeneratorState) chan Action {
	transitions := make(chan Action)
	go g.possibleTransitions(state, transitions)
	return transitions
}

func (g *GeneratorTransitionSystem) GetTransitions(state *GeneratorState) []Action {
	retval := make([]Action, 0, g.NumActions())
	for transition := range g.YieldTransitions(state) {
		retval = append(retval, transition)
	}
	return retval
}

// IsDeterministicState coincides with IsFinalState for this system:
// once the stack is down to the root no action choice remains.
func (g *GeneratorTransitionSystem) IsDeterministicState(state *GeneratorState) bool {
	return state.StackSize() < 2
}

func (g *GeneratorTransitionSystem) IsFinalState(state *GeneratorState) bool {
	return state.StackSize() < 2
}

// ChildIndex returns the node at the child end of the edge an ADD
// action introduces, by the post-application convention: Stack(0) after
// an ADD is the created node. COLLAPSE and WORD introduce no edge and
// report -1 for both ends.
func (g *GeneratorTransitionSystem) ChildIndex(state *GeneratorState, action Action) int {
	if action < 0 {
		panic(fmt.Sprintf("invalid generator action: %d", int(action)))
	}
	switch g.ActionType(action) {
	case ADD:
		return state.Stack(0)
	case COLLAPSE, WORD:
		return -1
	default:
		panic(fmt.Sprintf("invalid generator action: %d", int(action)))
	}
}

// ParentIndex returns the node gaining a child for an ADD action, by
// the same post-application convention as ChildIndex.
func (g *GeneratorTransitionSystem) ParentIndex(state *GeneratorState, action Action) int {
	if action < 0 {
		panic(fmt.Sprintf("invalid generator action: %d", int(action)))
	}
	switch g.ActionType(action) {
	case ADD:
		return state.Stack(1)
	case COLLAPSE, WORD:
		return -1
	default:
		panic(fmt.Sprintf("invalid generator action: %d", int(action)))
	}
}

func (g *GeneratorTransitionSystem) ActionAsString(action Action, state *GeneratorState) string {
	switch g.ActionType(action) {
	case COLLAPSE:
		return "COLLAPSE"
	case ADD:
		return fmt.Sprintf("ADD(%s, %s)", state.LabelAsString(g.Label(action)), state.TagAsString(g.Tag(action)))
	case WORD:
		return fmt.Sprintf("WORD(%s)", state.WordAsString(g.Word(action)))
	}
	return "UNKNOWN"
}

func (g *GeneratorTransitionSystem) Name() string {
	return "Generator"
}
