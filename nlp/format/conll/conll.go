package conll

// Package conll writes generated sentences in the CoNLL-X format.
// For a description see http://ilk.uvt.nl/conll/#dataformat

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"yag/nlp/types"
)

const (
	FIELD_SEPARATOR = "\t"
	NUM_FIELDS      = 10
	EMPTY_FIELD     = "_"
)

// A Row is a single output row of a CoNLL data set. Token ids are
// 1-based; Head 0 denotes attachment to the virtual root.
type Row struct {
	ID      int
	Form    string
	CPosTag string
	PosTag  string
	Head    int
	DepRel  string
}

func (r Row) String() string {
	fields := []string{
		fmt.Sprintf("%d", r.ID),
		orEmpty(r.Form),
		EMPTY_FIELD,
		orEmpty(r.CPosTag),
		orEmpty(r.PosTag),
		EMPTY_FIELD,
		fmt.Sprintf("%d", r.Head),
		orEmpty(r.DepRel),
		EMPTY_FIELD,
		EMPTY_FIELD,
	}
	return strings.Join(fields, FIELD_SEPARATOR)
}

func orEmpty(field string) string {
	if len(field) == 0 {
		return EMPTY_FIELD
	}
	return field
}

// Sentence2Rows converts a materialized sentence to output rows,
// shifting node ids and heads up by one so the root becomes 0.
func Sentence2Rows(sent types.Sentence) []Row {
	rows := make([]Row, 0, len(sent))
	for i, token := range sent {
		rows = append(rows, Row{
			ID:      i + 1,
			Form:    token.Word,
			CPosTag: token.Tag,
			PosTag:  token.Tag,
			Head:    token.Head + 1,
			DepRel:  token.Label,
		})
	}
	return rows
}

// Write writes sentences separated by blank lines.
func Write(writer io.Writer, sents []types.Sentence) error {
	for _, sent := range sents {
		for _, row := range Sentence2Rows(sent) {
			if _, err := fmt.Fprintln(writer, row.String()); err != nil {
				return errors.Wrap(err, "writing conll row")
			}
		}
		if _, err := fmt.Fprintln(writer); err != nil {
			return errors.Wrap(err, "writing conll sentence separator")
		}
	}
	return nil
}

func WriteFile(filename string, sents []types.Sentence) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating conll output")
	}
	defer file.Close()
	return Write(file, sents)
}
