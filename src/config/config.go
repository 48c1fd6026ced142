// Package config parses the compiler driver's command line and resolves its
// source input, mirroring the teacher's util.Options/util.ParseArgs/
// util.ReadSource trio (see DESIGN.md) trimmed to the flags this compiler
// actually has: there is one fixed x86-32 NASM target and no worker-thread
// count to configure, so -arch/-os/-vendor/-t/-ll all fall away.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"
)

const appVersion = "tinycc 1.0"

// stdinTimeout bounds how long ReadSource waits for input piped to stdin
// before giving up, matching the teacher's ReadSource.
const stdinTimeout = 500 * time.Millisecond

// Options holds the parsed command line.
type Options struct {
	Src      string // Path to source file; empty means read stdin.
	Out      string // Path to output assembly file; empty means stdout.
	Optimize bool   // Run the constant folder and peephole optimizer.
	PrintAST bool   // Pretty-print the AST instead of emitting assembly.
	Verbose  bool   // Log compiler statistics (error/warning/optimized counts) to stderr.
}

// Parse parses a command line (normally os.Args[1:]).
func Parse(args []string) (Options, error) {
	var opt Options
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--h", "-help", "--help":
			printHelp(os.Stdout)
			os.Exit(0)
		case "-v", "--v", "-version", "--version":
			fmt.Println(appVersion)
			os.Exit(0)
		case "-O":
			opt.Optimize = true
		case "-ast":
			opt.PrintAST = true
		case "-vb":
			opt.Verbose = true
		case "-o":
			if i+1 >= len(args) {
				return opt, fmt.Errorf("got flag %s but no argument", args[i])
			}
			if strings.HasPrefix(args[i+1], "-") {
				return opt, fmt.Errorf("expected path to output file, got new flag %s", args[i+1])
			}
			opt.Out = args[i+1]
			i++
		default:
			if strings.HasPrefix(args[i], "-") {
				return opt, fmt.Errorf("unexpected flag: %s", args[i])
			}
			if opt.Src != "" {
				return opt, fmt.Errorf("unexpected argument: %s (source already set to %s)", args[i], opt.Src)
			}
			opt.Src = args[i]
		}
	}
	return opt, nil
}

// printHelp prints a usage message.
func printHelp(w io.Writer) {
	tw := tabwriter.NewWriter(w, 6, 1, 1, ' ', 0)
	_, _ = fmt.Fprintln(tw, "-h, -help\tPrints this help message and exits.")
	_, _ = fmt.Fprintln(tw, "-o <path>\tPath to the output assembly file. Defaults to stdout.")
	_, _ = fmt.Fprintln(tw, "-O\tRun the constant folder and peephole optimizer.")
	_, _ = fmt.Fprintln(tw, "-ast\tPretty-print the AST instead of emitting assembly.")
	_, _ = fmt.Fprintln(tw, "-vb\tPrint compiler statistics (errors/warnings/optimized rewrites) to stderr.")
	_, _ = fmt.Fprintln(tw, "-v, -version\tPrints the compiler version and exits.")
	_ = tw.Flush()
}

// ReadSource reads source text from the file named by opt.Src, or from
// stdin (with a short timeout) if opt.Src is empty.
func ReadSource(opt Options) (string, error) {
	if opt.Src != "" {
		b, err := os.ReadFile(opt.Src)
		return string(b), err
	}

	c := make(chan string, 1)
	cerr := make(chan error, 1)
	go func() {
		reader := bufio.NewReader(os.Stdin)
		var sb strings.Builder
		_, err := io.Copy(&sb, reader)
		if err != nil {
			cerr <- err
			return
		}
		c <- sb.String()
	}()

	select {
	case <-time.After(stdinTimeout):
		return "", errors.New("expected input from stdin, got none")
	case err := <-cerr:
		return "", err
	case s := <-c:
		return s, nil
	}
}
