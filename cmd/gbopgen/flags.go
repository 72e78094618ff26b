package main

import (
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/oisee/gbopgen/pkg/gen"
	"github.com/oisee/gbopgen/pkg/inst"
)

// spaceFlag selects an opcode space.
type spaceFlag struct{ inst.Space }

var _ pflag.Value = (*spaceFlag)(nil)

func (f *spaceFlag) Set(s string) error {
	sp, err := inst.ParseSpace(s)
	if err != nil {
		return err
	}
	f.Space = sp
	return nil
}

func (f *spaceFlag) Type() string { return "space" }

// dialectFlag selects an output dialect.
type dialectFlag struct{ gen.Dialect }

var _ pflag.Value = (*dialectFlag)(nil)

func (f *dialectFlag) Set(s string) error {
	d, err := gen.LookupDialect(s)
	if err != nil {
		return err
	}
	f.Dialect = d
	return nil
}

func (f *dialectFlag) String() string {
	if f.Dialect == nil {
		return ""
	}
	return f.Name()
}

func (f *dialectFlag) Type() string { return strings.Join(gen.DialectNames(), "|") }

// levelFlag is the slog level behind --log-level.
type levelFlag struct{ slog.Level }

var _ pflag.Value = (*levelFlag)(nil)

func (f *levelFlag) Set(s string) error {
	if err := f.UnmarshalText([]byte(s)); err != nil {
		return errors.Wrapf(err, "log level %q", s)
	}
	return nil
}

func (f *levelFlag) Type() string { return "level" }
