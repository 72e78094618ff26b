package table

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/oisee/gbopgen/pkg/inst"
)

// Descriptor is one opcode as declared in the descriptor set.
type Descriptor struct {
	Name   string `json:"Name"`          // raw mnemonic, e.g. "LD (FF00+u8),A"
	Length int    `json:"Length"`        // encoded length in bytes
	Cycles int    `json:"TCyclesBranch"` // T-cycles when a branch is taken
	Unused bool   `json:"Unused,omitempty"`
}

// Set holds the descriptors of both opcode spaces, each in opcode order.
type Set struct {
	Unprefixed []Descriptor `json:"Unprefixed"`
	CBPrefixed []Descriptor `json:"CBPrefixed"`
}

// Space returns the descriptors of one opcode space.
func (s *Set) Space(space inst.Space) []Descriptor {
	if space == inst.CBPrefixed {
		return s.CBPrefixed
	}
	return s.Unprefixed
}

// Decode reads a descriptor set. Descriptors named "UNUSED" are flagged
// unused even when the source omits the flag.
func Decode(r io.Reader) (*Set, error) {
	var set Set
	if err := json.NewDecoder(r).Decode(&set); err != nil {
		return nil, errors.Wrap(err, "decode opcode descriptors")
	}
	for _, descs := range [][]Descriptor{set.Unprefixed, set.CBPrefixed} {
		for i := range descs {
			if strings.EqualFold(strings.TrimSpace(descs[i].Name), "unused") {
				descs[i].Unused = true
			}
		}
	}
	return &set, nil
}

// ReadFile decodes the descriptor set stored at path.
func ReadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open descriptor set")
	}
	defer f.Close()
	set, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return set, nil
}
