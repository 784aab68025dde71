// The gmtool command is a command-line tool for exploring and round-
// tripping a GameMaker data container (data.win/game.unx), the
// generalization of the teacher's cmd/viewcore over this module's own
// parsed state. Run "gmtool help" for the command list.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/biotomatede/libgm/gm"
)

// globalOpts mirrors gm.Options, bound to persistent flags shared by every
// subcommand that opens a file, the same "flags apply to all commands"
// shape as cmd/viewcore's -base/-prof.
var globalOpts struct {
	allowUnknownChunks bool
	parallel           bool
	noVerifyAlignment  bool
	noVerifyConstants  bool
	verbose            bool
}

func parseOptions() gm.Options {
	opts := gm.DefaultOptions()
	opts.AllowUnknownChunks = globalOpts.allowUnknownChunks
	opts.ParallelProcessing = globalOpts.parallel
	if globalOpts.noVerifyAlignment {
		opts.VerifyAlignment = false
	}
	if globalOpts.noVerifyConstants {
		opts.VerifyConstants = false
	}
	return opts
}

func logPhase(format string, args ...any) {
	if globalOpts.verbose {
		log.Printf(format, args...)
	}
}

func openData(path string) (*gm.Data, error) {
	logPhase("parsing %s", path)
	data, err := gm.ParseFile(path, parseOptions())
	if err != nil {
		return nil, err
	}
	logPhase("parsed %s: %d strings, %d codes, %d warnings", path, len(data.Strings), len(data.Codes), len(data.Warnings))
	return data, nil
}

func main() {
	root := &cobra.Command{
		Use:   "gmtool",
		Short: "Inspect and round-trip GameMaker data containers",
	}
	root.PersistentFlags().BoolVar(&globalOpts.allowUnknownChunks, "allow-unknown-chunks", false, "treat unrecognized chunk tags as a warning instead of a fatal error")
	root.PersistentFlags().BoolVar(&globalOpts.parallel, "parallel", false, "decode independent chunks concurrently (experimental)")
	root.PersistentFlags().BoolVar(&globalOpts.noVerifyAlignment, "no-verify-alignment", false, "downgrade alignment violations to warnings")
	root.PersistentFlags().BoolVar(&globalOpts.noVerifyConstants, "no-verify-constants", false, "downgrade out-of-range constant values to warnings")
	root.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false, "log phase boundaries to stderr")

	root.AddCommand(
		newParseCmd(),
		newChunksCmd(),
		newStringsCmd(),
		newDisasmCmd(),
		newCFGCmd(),
		newVersionCmd(),
		newSerializeCmd(),
		newShellCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
