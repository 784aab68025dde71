package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/biotomatede/libgm/gm"
	"github.com/biotomatede/libgm/internal/cfg"
	"github.com/biotomatede/libgm/internal/disasm"
)

// newShellCmd opens a container and drops into an interactive prompt for
// poking at the parsed gm.Data, the generalization of the teacher's ogle
// console over this module's read-only asset tables: list strings, dump a
// code entry's disassembly or CFG, walk a variable's or function's
// occurrence chain.
func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell <file>",
		Short: "Open an interactive shell over a parsed container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := openData(args[0])
			if err != nil {
				return err
			}
			return runShell(data)
		},
	}
}

func runShell(data *gm.Data) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "gmtool> ",
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stdout(), "gmtool shell: type 'help' for commands, 'quit' to exit")
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmdName, rest := fields[0], fields[1:]
		switch cmdName {
		case "help":
			printShellHelp(rl.Stdout())
		case "quit", "exit":
			return nil
		case "strings":
			shellStrings(rl.Stdout(), data, rest)
		case "string":
			shellString(rl.Stdout(), data, rest)
		case "disasm":
			shellDisasm(rl.Stdout(), data, rest)
		case "cfg":
			shellCFG(rl.Stdout(), data, rest)
		case "var":
			shellOccurrences(rl.Stdout(), data, rest, true)
		case "func":
			shellOccurrences(rl.Stdout(), data, rest, false)
		case "warnings":
			shellWarnings(rl.Stdout(), data)
		default:
			fmt.Fprintf(rl.Stdout(), "unknown command %q (try 'help')\n", cmdName)
		}
	}
}

func printShellHelp(w io.Writer) {
	fmt.Fprint(w, `commands:
  strings [prefix]        list strings, optionally filtered by prefix
  string <index>          print one string by index
  disasm <code-index>     disassemble a code entry
  cfg <code-index>        print a code entry's control-flow graph
  var <index>             walk a variable's occurrence chain
  func <index>            walk a function's occurrence chain
  warnings                print decode warnings
  help                    show this message
  quit                    exit the shell
`)
}

func shellStrings(w io.Writer, data *gm.Data, args []string) {
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}
	for i, s := range data.Strings {
		if prefix != "" && !strings.HasPrefix(s, prefix) {
			continue
		}
		fmt.Fprintf(w, "%6d: %q\n", i, s)
	}
}

func shellString(w io.Writer, data *gm.Data, args []string) {
	idx, ok := shellIndex(w, args, len(data.Strings))
	if !ok {
		return
	}
	fmt.Fprintf(w, "%q\n", data.Strings[idx])
}

func shellDisasm(w io.Writer, data *gm.Data, args []string) {
	idx, ok := shellIndex(w, args, len(data.Codes))
	if !ok {
		return
	}
	code := &data.Codes[idx]
	fmt.Fprintf(w, "%s:\n", data.String(code.Name))
	fmt.Fprint(w, disasm.Code(code.ResolvedInstructions(data), data))
}

func shellCFG(w io.Writer, data *gm.Data, args []string) {
	idx, ok := shellIndex(w, args, len(data.Codes))
	if !ok {
		return
	}
	code := &data.Codes[idx]
	g, err := cfg.Build(code.ResolvedInstructions(data), data)
	if err != nil {
		fmt.Fprintln(w, err)
		return
	}
	for i, b := range g.Blocks {
		fmt.Fprintf(w, "block %d [0x%x, 0x%x): preds=%v successors=%v\n", i, b.Start, b.End, b.Predecessors, b.Successors)
	}
}

func shellOccurrences(w io.Writer, data *gm.Data, args []string, isVariable bool) {
	if isVariable {
		idx, ok := shellIndex(w, args, len(data.Variables))
		if !ok {
			return
		}
		v := data.Variables[idx]
		fmt.Fprintf(w, "%s: %d occurrence(s)\n", data.VariableName(v.Name), len(v.OccurrencePositions))
		for _, pos := range v.OccurrencePositions {
			fmt.Fprintf(w, "  0x%x\n", pos)
		}
		return
	}
	idx, ok := shellIndex(w, args, len(data.Functions))
	if !ok {
		return
	}
	f := data.Functions[idx]
	fmt.Fprintf(w, "%s: %d occurrence(s)\n", data.FunctionName(f.Name), len(f.OccurrencePositions))
	for _, pos := range f.OccurrencePositions {
		fmt.Fprintf(w, "  0x%x\n", pos)
	}
}

func shellWarnings(w io.Writer, data *gm.Data) {
	if len(data.Warnings) == 0 {
		fmt.Fprintln(w, "no warnings")
		return
	}
	for _, wn := range data.Warnings {
		fmt.Fprintln(w, wn)
	}
}

func shellIndex(w io.Writer, args []string, n int) (int, bool) {
	if len(args) == 0 {
		fmt.Fprintln(w, "missing index argument")
		return 0, false
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(w, "bad index %q: %v\n", args[0], err)
		return 0, false
	}
	if idx < 0 || idx >= n {
		fmt.Fprintf(w, "index %d out of range (have %d)\n", idx, n)
		return 0, false
	}
	return idx, true
}
