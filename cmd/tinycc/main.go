// Command tinycc compiles a single TinyC source file (spec.md §1) down to
// x86-32 NASM assembly, wiring config, frontend, and the semantic/codegen
// pipeline together the way the teacher's main.go wires util/frontend/ir/
// backend together.
package main

import (
	"fmt"
	"os"

	"tinycc/src/codegen"
	"tinycc/src/config"
	"tinycc/src/diag"
	"tinycc/src/fold"
	"tinycc/src/frontend"
	"tinycc/src/layout"
	"tinycc/src/peephole"
	"tinycc/src/regest"
	"tinycc/src/render"
	"tinycc/src/resolve"
	"tinycc/src/sig"
)

// run drives the compilation of src under opt, returning the text to write
// to opt.Out (or stdout) and any fatal error.
func run(opt config.Options, src string) (string, error) {
	program, err := frontend.Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse error: %s", err)
	}

	var tally diag.Tally
	if opt.Optimize {
		fold.Run(program, &tally)
	}
	resolve.Resolve(program, &tally)
	sig.Run(program, &tally)
	layout.Run(program)
	regest.Run(program)

	if tally.HasErrors() {
		return "", reportErrors(tally)
	}

	if opt.PrintAST {
		return program.Dump(), nil
	}

	items := codegen.Run(program, &tally)
	if tally.HasErrors() {
		return "", reportErrors(tally)
	}

	if opt.Optimize {
		items = peephole.Run(items, &tally)
	}

	if opt.Verbose {
		errors, warnings, optimized := tally.Counts()
		fmt.Fprintf(os.Stderr, "%d error(s), %d warning(s), %d rewrite(s)\n", errors, warnings, optimized)
		for _, d := range tally.Diagnostics() {
			fmt.Fprintln(os.Stderr, d)
		}
	}

	return render.Render(items), nil
}

// reportErrors folds every diagnostic the pipeline accumulated into a
// single error, per spec.md §6.2's "every pass reports before the driver
// gives up" rule (diag.Tally never short-circuits mid-pass).
func reportErrors(tally diag.Tally) error {
	var msg string
	for _, d := range tally.Diagnostics() {
		msg += d.String() + "\n"
	}
	return fmt.Errorf("%s", msg)
}

func main() {
	opt, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "command line argument error: %s\n", err)
		os.Exit(1)
	}

	src, err := config.ReadSource(opt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not read source code: %s\n", err)
		os.Exit(1)
	}

	out, err := run(opt, src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	if opt.Out == "" {
		fmt.Print(out)
		return
	}
	if err := os.WriteFile(opt.Out, []byte(out), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "could not write %s: %s\n", opt.Out, err)
		os.Exit(1)
	}
}
