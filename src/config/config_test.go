package config

import (
	"os"
	"testing"
)

func TestParseSourcePathAndOutputFlag(t *testing.T) {
	opt, err := Parse([]string{"-o", "out.asm", "in.tc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt.Src != "in.tc" || opt.Out != "out.asm" {
		t.Errorf("got %+v", opt)
	}
}

func TestParseOptimizeAndASTFlags(t *testing.T) {
	opt, err := Parse([]string{"-O", "-ast", "in.tc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opt.Optimize || !opt.PrintAST {
		t.Errorf("got %+v", opt)
	}
}

func TestParseDefaultsOptimizeOff(t *testing.T) {
	opt, err := Parse([]string{"in.tc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt.Optimize {
		t.Errorf("expected -O to default off, got %+v", opt)
	}
}

func TestParseVerboseFlag(t *testing.T) {
	opt, err := Parse([]string{"-vb", "in.tc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opt.Verbose {
		t.Errorf("got %+v", opt)
	}
}

func TestParseNoArgsLeavesSrcEmpty(t *testing.T) {
	opt, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt.Src != "" {
		t.Errorf("expected empty Src for stdin, got %q", opt.Src)
	}
}

func TestParseRejectsUnknownFlag(t *testing.T) {
	_, err := Parse([]string{"-bogus"})
	if err == nil {
		t.Fatalf("expected an error for an unknown flag")
	}
}

func TestParseRejectsMissingOutputArgument(t *testing.T) {
	_, err := Parse([]string{"-o"})
	if err == nil {
		t.Fatalf("expected an error for -o with no argument")
	}
}

func TestParseRejectsSecondPositionalArgument(t *testing.T) {
	_, err := Parse([]string{"a.tc", "b.tc"})
	if err == nil {
		t.Fatalf("expected an error for two positional source arguments")
	}
}

func TestReadSourceFromFile(t *testing.T) {
	path := t.TempDir() + "/in.tc"
	want := "int main() { return 0; }\n"
	if err := os.WriteFile(path, []byte(want), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	got, err := ReadSource(Options{Src: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
