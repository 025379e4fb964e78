package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	lispy "github.com/dnl2612/lispy"
)

const (
	appName     = "lispy"
	historyFile = ".lispy_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("lispy %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type (exit) to exit.", lispy.Version)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		// Piped input is the classic driver: read stdin until EOF,
		// evaluating and printing each form.
		if st, err := os.Stdin.Stat(); err == nil && st.Mode()&os.ModeCharDevice == 0 {
			os.Exit(runStream(os.Stdin, "stdin"))
		}
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(lispy.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`lispy %s (built %s)

Usage:
  %s run <file.lisp>   Evaluate a file (use "-" for stdin).
  %s repl              Start the interactive REPL.
  %s version           Print the version.

With no command and piped input, %s reads programs from stdin.

`, lispy.Version, lispy.BuildDate, appName, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.lisp>\n", appName)
		return 2
	}
	if args[0] == "-" {
		return runStream(os.Stdin, "stdin")
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, args[0], err)
		return 1
	}
	return runSource(string(src), args[0])
}

// runSource buffers the program text so syntax errors can be rendered as
// caret snippets. Any error is fatal to the run; (exit) succeeds.
func runSource(src, name string) int {
	in := lispy.NewInterp()
	err := in.Run(strings.NewReader(src), os.Stdout)
	if err == nil || errors.Is(err, lispy.ErrExit) {
		return 0
	}
	fmt.Fprintln(os.Stderr, lispy.WrapErrorWithName(err, name, src).Error())
	return 1
}

// runStream drives the loop over an unbuffered stream (no snippets, the
// source is gone by the time an error surfaces).
func runStream(r io.Reader, name string) int {
	in := lispy.NewInterp()
	err := in.Run(r, os.Stdout)
	if err == nil || errors.Is(err, lispy.ErrExit) {
		return 0
	}
	fmt.Fprintf(os.Stderr, "%s: %s: %v\n", appName, name, err)
	return 1
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

// cmdRepl runs an interactive session. Unlike batch mode, errors are
// reported and the loop continues with the next form; state accumulated in
// the root environment before the failing form is kept.
func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	in := lispy.NewInterp()

	for {
		code, ok := readByParseProbe(in, ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return 0
		}
		if strings.TrimSpace(code) == "" {
			continue
		}

		forms, err := in.ReadString(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(lispy.WrapErrorWithSource(err, code).Error()))
			continue
		}
		for _, form := range forms {
			v, err := in.Eval(nil, form)
			if errors.Is(err, lispy.ErrExit) {
				return 0
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, red(err.Error()))
				break
			}
			fmt.Println(blue(lispy.FormatValue(v)))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readByParseProbe accumulates lines until the reader stops reporting an
// incomplete form (unclosed list, dangling quote), giving multi-line input
// for free.
func readByParseProbe(in *lispy.Interp, ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := in.ReadString(src); lispy.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
