package util

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ReadFrequencyMap reads a term-frequency map file into a frozen
// EnumSet. The format is one "term frequency" pair per line, sorted by
// descending frequency; lines starting with '#' and blank lines are
// skipped. Only the terms are kept - indices follow file order.
func ReadFrequencyMap(filename string) (*EnumSet, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening frequency map")
	}
	defer file.Close()

	e := NewEnumSet(100)
	scanner := bufio.NewScanner(file)
	var lineNum int
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, errors.Errorf("%s:%d: expected 'term frequency', got %q", filename, lineNum, line)
		}
		if _, isNew := e.Add(fields[0]); !isNew {
			return nil, errors.Errorf("%s:%d: duplicate term %q", filename, lineNum, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading frequency map")
	}
	e.Freeze()
	return e, nil
}

// WriteFrequencyMap writes terms with a constant frequency of 1, enough
// to round-trip through ReadFrequencyMap.
func WriteFrequencyMap(filename string, e *EnumSet) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating frequency map")
	}
	defer file.Close()
	writer := bufio.NewWriter(file)
	for _, term := range e.Index {
		fmt.Fprintf(writer, "%s 1\n", term)
	}
	return errors.Wrap(writer.Flush(), "writing frequency map")
}

func VerifyExists(filename string) bool {
	_, err := os.Stat(filename)
	if err != nil {
		fmt.Println("Error accessing file", filename)
		fmt.Println(err)
		return false
	}
	return true
}
