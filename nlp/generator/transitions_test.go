package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yag/util"
)

func testVocab() (labels, tags, words *util.EnumSet) {
	labels = util.NewEnumSetOf([]string{"nsubj", "root"})
	tags = util.NewEnumSetOf([]string{"NN"})
	words = util.NewEnumSetOf([]string{"dog", "barks"})
	return labels, tags, words
}

func testSystem(t *testing.T) (TransitionSystem, *GeneratorState) {
	labels, tags, words := testVocab()
	trans, exists := NewTransitionSystem("generator", labels, tags, words)
	require.True(t, exists, "generator transition system not registered")
	state := NewGeneratorState(nil, labels, tags, words, true)
	return trans, state
}

func TestActionEncoding(t *testing.T) {
	trans, _ := testSystem(t)

	assert.Equal(t, Action(0), trans.CollapseAction())
	// L=2, T=1: ADD range is 1..2, WORD range is 3..4
	assert.Equal(t, Action(2), trans.AddAction(1, 0))
	assert.Equal(t, Action(1), trans.AddAction(0, 0))
	assert.Equal(t, Action(4), trans.WordAction(1))
	assert.Equal(t, Action(3), trans.WordAction(0))
	assert.Equal(t, 5, trans.NumActions())
	assert.Equal(t, 3, trans.NumActionTypes())
}

func TestActionRoundTrip(t *testing.T) {
	trans, _ := testSystem(t)
	for a := 0; a < trans.NumActions(); a++ {
		action := Action(a)
		switch trans.ActionType(action) {
		case COLLAPSE:
			assert.Equal(t, action, trans.CollapseAction())
			assert.Equal(t, -1, trans.Label(action))
			assert.Equal(t, -1, trans.Tag(action))
			assert.Equal(t, -1, trans.Word(action))
		case ADD:
			assert.Equal(t, action, trans.AddAction(trans.Label(action), trans.Tag(action)))
			assert.Equal(t, -1, trans.Word(action))
		case WORD:
			assert.Equal(t, action, trans.WordAction(trans.Word(action)))
			assert.Equal(t, -1, trans.Label(action))
			assert.Equal(t, -1, trans.Tag(action))
		default:
			t.Fatalf("unknown action type for action %d", a)
		}
	}
}

// Exactly one action type is ever legal; which one follows the missing
// word flag and the stack depth.
func TestLegalityExclusive(t *testing.T) {
	trans, state := testSystem(t)

	assertOneLegalType := func(state *GeneratorState) {
		legal := 0
		if trans.IsAllowedAction(trans.CollapseAction(), state) {
			legal++
		}
		if trans.IsAllowedAction(trans.AddAction(0, 0), state) {
			legal++
		}
		if trans.IsAllowedAction(trans.WordAction(0), state) {
			legal++
		}
		assert.Equal(t, 1, legal, "exactly one action type should be legal, state %v", state)
	}

	// initial: only ADD
	assert.True(t, trans.IsAllowedAction(trans.AddAction(1, 0), state))
	assert.False(t, trans.IsAllowedAction(trans.CollapseAction(), state))
	assert.False(t, trans.IsAllowedAction(trans.WordAction(0), state))
	assertOneLegalType(state)

	// after ADD: node is wordless, only WORD
	trans.PerformAction(trans.AddAction(1, 0), state)
	assert.True(t, state.MissingWord())
	assert.True(t, trans.IsAllowedAction(trans.WordAction(1), state))
	assert.False(t, trans.IsAllowedAction(trans.AddAction(0, 0), state))
	assert.False(t, trans.IsAllowedAction(trans.CollapseAction(), state))
	assertOneLegalType(state)

	// worded, stack [-1 0]: ADD but not COLLAPSE (collapse needs depth 3)
	trans.PerformAction(trans.WordAction(1), state)
	assert.False(t, state.MissingWord())
	assert.True(t, trans.IsAllowedAction(trans.AddAction(0, 0), state))
	assert.False(t, trans.IsAllowedAction(trans.CollapseAction(), state))
	assertOneLegalType(state)

	// second node worded, stack [-1 0 1]: COLLAPSE becomes legal
	trans.PerformAction(trans.AddAction(0, 0), state)
	trans.PerformAction(trans.WordAction(0), state)
	assert.True(t, trans.IsAllowedAction(trans.CollapseAction(), state))
	assert.True(t, trans.IsAllowedAction(trans.AddAction(0, 0), state))
}

// The literal end-to-end scenario: "barks" with subject "dog".
func TestGenerateDogBarks(t *testing.T) {
	trans, state := testSystem(t)

	for _, action := range []Action{2, 4, 1, 3, 0, 0} {
		trans.PerformAction(action, state)
	}

	require.Equal(t, 2, state.NumNodes())
	assert.Equal(t, ROOT_NODE, state.Head(0))
	assert.Equal(t, "root", state.LabelAsString(state.Label(0)))
	assert.Equal(t, "NN", state.TagAsString(state.Tag(0)))
	assert.Equal(t, "barks", state.WordAsString(state.Word(0)))

	assert.Equal(t, 0, state.Head(1))
	assert.Equal(t, "nsubj", state.LabelAsString(state.Label(1)))
	assert.Equal(t, "NN", state.TagAsString(state.Tag(1)))
	assert.Equal(t, "dog", state.WordAsString(state.Word(1)))

	assert.True(t, trans.IsFinalState(state))
	assert.True(t, trans.IsDeterministicState(state))
	assert.Equal(t, []Action{2, 4, 1, 3, 0, 0}, state.History())
}

func TestTerminal(t *testing.T) {
	trans, state := testSystem(t)

	// final by the stack test even before anything was generated
	assert.True(t, trans.IsFinalState(state))

	trans.PerformAction(trans.AddAction(1, 0), state)
	assert.False(t, trans.IsFinalState(state))
	assert.False(t, trans.IsAllowedAction(trans.CollapseAction(), state), "collapse while word is missing")

	trans.PerformAction(trans.WordAction(0), state)
	assert.False(t, trans.IsFinalState(state))
}

func TestActionMetaData(t *testing.T) {
	trans, state := testSystem(t)

	add := trans.AddAction(1, 0)
	assert.Equal(t, -1, trans.ChildIndex(state, trans.CollapseAction()))
	assert.Equal(t, -1, trans.ParentIndex(state, trans.CollapseAction()))
	assert.Equal(t, -1, trans.ChildIndex(state, trans.WordAction(0)))
	assert.Equal(t, -1, trans.ParentIndex(state, trans.WordAction(0)))

	trans.PerformAction(add, state)
	// post-application convention: top is the created node, under it
	// the node that gained the child
	assert.Equal(t, 0, trans.ChildIndex(state, add))
	assert.Equal(t, ROOT_NODE, trans.ParentIndex(state, add))

	assert.Panics(t, func() { trans.ChildIndex(state, Action(-3)) })
	assert.Panics(t, func() { trans.ParentIndex(state, Action(-3)) })
}

func TestActionAsString(t *testing.T) {
	trans, state := testSystem(t)

	assert.Equal(t, "COLLAPSE", trans.ActionAsString(trans.CollapseAction(), state))
	assert.Equal(t, "ADD(root, NN)", trans.ActionAsString(trans.AddAction(1, 0), state))
	assert.Equal(t, "WORD(dog)", trans.ActionAsString(trans.WordAction(0), state))
}

func TestGetTransitions(t *testing.T) {
	trans, state := testSystem(t)

	// initial: all ADD actions, no collapse
	assert.Equal(t, []Action{1, 2}, trans.GetTransitions(state))

	trans.PerformAction(trans.AddAction(0, 0), state)
	// wordless: all WORD actions
	assert.Equal(t, []Action{3, 4}, trans.GetTransitions(state))

	trans.PerformAction(trans.WordAction(0), state)
	trans.PerformAction(trans.AddAction(0, 0), state)
	trans.PerformAction(trans.WordAction(1), state)
	// depth 3: collapse joins the ADD actions
	assert.Equal(t, []Action{0, 1, 2}, trans.GetTransitions(state))
}

func TestPerformActionWithoutHistory(t *testing.T) {
	trans, state := testSystem(t)

	trans.PerformActionWithoutHistory(trans.AddAction(1, 0), state)
	trans.PerformActionWithoutHistory(trans.WordAction(0), state)
	assert.Empty(t, state.History())
	assert.Equal(t, 1, state.NumNodes())
}

func TestRegistry(t *testing.T) {
	labels, tags, words := testVocab()
	_, exists := NewTransitionSystem("no such system", labels, tags, words)
	assert.False(t, exists)

	trans, exists := NewTransitionSystem("generator", labels, tags, words)
	require.True(t, exists)
	assert.Equal(t, "Generator", trans.Name())
}
