package table

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

// WriteJSON writes t as indented JSON.
func WriteJSON(w io.Writer, t *Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(t), "encode table")
}

// ReadJSON reads a table written by WriteJSON.
func ReadJSON(r io.Reader) (*Table, error) {
	var t Table
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, errors.Wrap(err, "decode table")
	}
	return &t, nil
}

// SaveJSON writes t to path.
func SaveJSON(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create table snapshot")
	}
	defer f.Close()
	return WriteJSON(f, t)
}

// LoadJSON reads the table stored at path.
func LoadJSON(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open table snapshot")
	}
	defer f.Close()
	return ReadJSON(f)
}
