package conll

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yag/nlp/types"
)

func testSentence() types.Sentence {
	return types.Sentence{
		{Word: "barks", Tag: "NN", Label: "ROOT", Head: -1},
		{Word: "dog", Tag: "NN", Label: "nsubj", Head: 0},
	}
}

func TestSentence2Rows(t *testing.T) {
	rows := Sentence2Rows(testSentence())
	require.Len(t, rows, 2)

	assert.Equal(t, Row{ID: 1, Form: "barks", CPosTag: "NN", PosTag: "NN", Head: 0, DepRel: "ROOT"}, rows[0])
	assert.Equal(t, Row{ID: 2, Form: "dog", CPosTag: "NN", PosTag: "NN", Head: 1, DepRel: "nsubj"}, rows[1])
}

func TestRowString(t *testing.T) {
	row := Row{ID: 1, Form: "barks", CPosTag: "NN", PosTag: "NN", Head: 0, DepRel: "ROOT"}
	assert.Equal(t, "1\tbarks\t_\tNN\tNN\t_\t0\tROOT\t_\t_", row.String())

	empty := Row{ID: 2, Head: 1}
	assert.Equal(t, "2\t_\t_\t_\t_\t_\t1\t_\t_\t_", empty.String())
}

func TestWrite(t *testing.T) {
	var buf strings.Builder
	err := Write(&buf, []types.Sentence{testSentence(), testSentence()})
	require.NoError(t, err)

	expected := "1\tbarks\t_\tNN\tNN\t_\t0\tROOT\t_\t_\n" +
		"2\tdog\t_\tNN\tNN\t_\t1\tnsubj\t_\t_\n" +
		"\n"
	assert.Equal(t, expected+expected, buf.String())
}
