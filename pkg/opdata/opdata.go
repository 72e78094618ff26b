// Package opdata embeds the LR35902 opcode descriptor set.
package opdata

import (
	"bytes"
	_ "embed"

	"github.com/pkg/errors"

	"github.com/oisee/gbopgen/pkg/table"
)

//go:embed ops.json
var opsJSON []byte

// Raw returns the embedded descriptor JSON.
func Raw() []byte { return opsJSON }

// Default decodes the embedded descriptor set.
func Default() (*table.Set, error) {
	set, err := table.Decode(bytes.NewReader(opsJSON))
	if err != nil {
		return nil, errors.Wrap(err, "embedded ops.json")
	}
	return set, nil
}

// Load returns the descriptor set at path, or the embedded one when path
// is empty.
func Load(path string) (*table.Set, error) {
	if path == "" {
		return Default()
	}
	return table.ReadFile(path)
}
