package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/oisee/gbopgen/pkg/check"
	"github.com/oisee/gbopgen/pkg/gen"
	"github.com/oisee/gbopgen/pkg/inst"
	"github.com/oisee/gbopgen/pkg/opdata"
	"github.com/oisee/gbopgen/pkg/table"
)

// errFindings is returned by check when stubs and tables disagree.
var errFindings = errors.New("handler tables are inconsistent")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	level := levelFlag{slog.LevelInfo}
	var logger *slog.Logger

	rootCmd := &cobra.Command{
		Use:           "gbopgen",
		Short:         "LR35902 opcode table synthesizer: handler stubs and dispatch tables",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level.Level}))
		},
	}
	rootCmd.PersistentFlags().Var(&level, "log-level", "Log level (debug, info, warn, error)")

	log := func() *slog.Logger { return logger }

	rootCmd.AddCommand(
		newStubsCmd(log),
		newTableCmd(log),
		newCheckCmd(log),
		newTreeCmd(),
		newDumpCmd(log),
		newDiffCmd(log),
	)
	return rootCmd
}

// openOutput returns the writer for an --output flag; "" means stdout.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create output")
	}
	return f, f.Close, nil
}

func newStubsCmd(log func() *slog.Logger) *cobra.Command {
	dialect := dialectFlag{gen.Go}
	var pkg, output string

	cmd := &cobra.Command{
		Use:   "stubs",
		Short: "Generate the rotate/shift/bit, load and ALU handler stubs",
		RunE: func(cmd *cobra.Command, args []string) error {
			stubs := gen.All()
			w, closeOut, err := openOutput(cmd, output)
			if err != nil {
				return err
			}
			if err := gen.WriteStubs(w, dialect.Dialect, pkg, stubs); err != nil {
				closeOut()
				return errors.Wrap(err, "write stubs")
			}
			log().Info("generated handler stubs", "count", len(stubs), "dialect", dialect.Name(), "output", output)
			return closeOut()
		},
	}
	cmd.Flags().Var(&dialect, "dialect", "Output dialect")
	cmd.Flags().StringVar(&pkg, "package", "cpu", "Package name of generated Go source")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func newTableCmd(log func() *slog.Logger) *cobra.Command {
	space := spaceFlag{inst.CBPrefixed}
	dialect := dialectFlag{gen.Go}
	var ops, pkg, output, name string
	var asJSON, listing bool

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Build a dispatch table from opcode descriptors",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := opdata.Load(ops)
			if err != nil {
				return err
			}
			tbl, err := table.Build(space.Space, set.Space(space.Space))
			if err != nil {
				return err
			}
			log().Debug("built table", "space", space.String(), "handlers", len(tbl.Handlers()))

			w, closeOut, err := openOutput(cmd, output)
			if err != nil {
				return err
			}
			switch {
			case asJSON:
				err = table.WriteJSON(w, tbl)
			case listing:
				err = writeListing(w, tbl)
			default:
				if name == "" {
					name = table.Name(dialect.Dialect, space.Space)
				}
				var src []byte
				if src, err = tbl.Render(dialect.Dialect, pkg, name); err == nil {
					_, err = w.Write(src)
				}
			}
			if err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}
	cmd.Flags().Var(&space, "space", "Opcode space (unprefixed, cb)")
	cmd.Flags().Var(&dialect, "dialect", "Output dialect")
	cmd.Flags().StringVar(&ops, "ops", "", "Descriptor JSON file (default embedded LR35902 set)")
	cmd.Flags().StringVar(&pkg, "package", "cpu", "Package name of generated Go source")
	cmd.Flags().StringVar(&name, "name", "", "Table variable name (default per dialect and space)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write a JSON snapshot instead of source")
	cmd.Flags().BoolVar(&listing, "listing", false, "Write a plain opcode listing")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.MarkFlagsMutuallyExclusive("json", "listing")
	return cmd
}

// writeListing prints one line per opcode with a zero immediate.
func writeListing(w io.Writer, t *table.Table) error {
	bw := bufio.NewWriter(w)
	for _, r := range t.Rows {
		h := r.Handler
		if r.IsNull() {
			h = "-"
		}
		fmt.Fprintf(bw, "%-8s %-20s %d %3d  %s\n", t.Space.Opcode(r.Opcode), r.Format(0), r.Length, r.Cycles, h)
	}
	return bw.Flush()
}

func newCheckCmd(log func() *slog.Logger) *cobra.Command {
	var ops string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Cross-check generated stubs against the dispatch tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := opdata.Load(ops)
			if err != nil {
				return err
			}
			unprefixed, cb, err := table.BuildAll(set)
			if err != nil {
				return err
			}
			r := check.Verify(gen.All(), unprefixed, cb)
			r.Log(log())
			if !r.OK() {
				return errors.Wrapf(errFindings, "%d findings", len(r.Findings))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d bound, %d external, %d null\n", r.Matched, r.External, r.Null)
			return nil
		},
	}
	cmd.Flags().StringVar(&ops, "ops", "", "Descriptor JSON file (default embedded LR35902 set)")
	return cmd
}

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the generated handlers as a space/block/family tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), gen.Tree(gen.All()).String())
			return err
		},
	}
}

func newDumpCmd(log func() *slog.Logger) *cobra.Command {
	space := spaceFlag{inst.CBPrefixed}
	var slot, ops string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump the stub and dispatch row behind one opcode",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseUint(slot, 0, 8)
			if err != nil {
				return errors.Wrapf(err, "slot %q", slot)
			}
			set, err := opdata.Load(ops)
			if err != nil {
				return err
			}
			tbl, err := table.Build(space.Space, set.Space(space.Space))
			if err != nil {
				return err
			}

			cfg := spew.ConfigState{Indent: "  ", DisableMethods: true, DisablePointerAddresses: true}
			w := cmd.OutOrStdout()
			if s, ok := gen.AtSlot(gen.All(), space.Space, uint8(n)); ok {
				cfg.Fdump(w, s)
			} else {
				log().Info("no generated stub", "opcode", space.Opcode(uint8(n)))
			}
			cfg.Fdump(w, tbl.Rows[n])
			return nil
		},
	}
	cmd.Flags().Var(&space, "space", "Opcode space (unprefixed, cb)")
	cmd.Flags().StringVar(&slot, "slot", "0", "Opcode byte (decimal or 0x hex)")
	cmd.Flags().StringVar(&ops, "ops", "", "Descriptor JSON file (default embedded LR35902 set)")
	return cmd
}

func newDiffCmd(log func() *slog.Logger) *cobra.Command {
	var color bool

	cmd := &cobra.Command{
		Use:   "diff [a.json] [b.json]",
		Short: "Show the differences between two table snapshots",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := table.LoadJSON(args[0])
			if err != nil {
				return err
			}
			b, err := table.LoadJSON(args[1])
			if err != nil {
				return err
			}
			out, err := table.Diff(a, b, color)
			if err != nil {
				return err
			}
			if out == "" {
				log().Info("tables are identical", "a", args[0], "b", args[1])
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&color, "color", false, "Colorize the diff")
	return cmd
}
