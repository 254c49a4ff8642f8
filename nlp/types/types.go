package types

import (
	"reflect"
	"yag/util"
)

const (
	ROOT_TOKEN = "ROOT"
	ROOT_LABEL = "ROOT"

	// Head value of tokens attached to the virtual root.
	ROOT_HEAD = -1
)

// A Token is one generated word with its tag and its labeled attachment.
type Token struct {
	Word  string
	Tag   string
	Label string
	Head  int
}

func (t Token) Attached() bool {
	return t.Head != ROOT_HEAD
}

type Sentence []Token

func (s Sentence) Tokens() []string {
	retval := make([]string, len(s))
	for i, token := range s {
		retval[i] = token.Word
	}
	return retval
}

func (s Sentence) Equal(otherEq util.Equaler) bool {
	other, ok := otherEq.(Sentence)
	if !ok {
		return false
	}
	return reflect.DeepEqual(s, other)
}
