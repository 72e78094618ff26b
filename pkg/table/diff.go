package table

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Diff compares two table snapshots and returns an ASCII delta of b
// against a. The delta is empty when the snapshots are equal.
func Diff(a, b *Table, coloring bool) (string, error) {
	left, err := marshal(a)
	if err != nil {
		return "", err
	}
	right, err := marshal(b)
	if err != nil {
		return "", err
	}

	delta, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return "", errors.Wrap(err, "compare tables")
	}
	if !delta.Modified() {
		return "", nil
	}

	var leftObj map[string]interface{}
	if err := json.Unmarshal(left, &leftObj); err != nil {
		return "", errors.Wrap(err, "decode left table")
	}
	f := formatter.NewAsciiFormatter(leftObj, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       coloring,
	})
	out, err := f.Format(delta)
	return out, errors.Wrap(err, "format table diff")
}

func marshal(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
