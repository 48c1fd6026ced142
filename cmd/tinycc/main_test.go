package main

import (
	"strings"
	"testing"

	"tinycc/src/config"
)

// compileScenario runs a TinyC source string through run() with and without
// optimization, the way the teacher's own test file runs every bundled
// fixture through the full pipeline before asserting on the result.
func compileScenario(t *testing.T, src string) (unopt, opt string) {
	t.Helper()
	u, err := run(config.Options{}, src)
	if err != nil {
		t.Fatalf("unoptimized compile failed: %s", err)
	}
	o, err := run(config.Options{Optimize: true}, src)
	if err != nil {
		t.Fatalf("optimized compile failed: %s", err)
	}
	return u, o
}

func TestScenarioReturnZero(t *testing.T) {
	unopt, opt := compileScenario(t, "int main() { return 0; }")

	for _, out := range []string{unopt, opt} {
		if !strings.Contains(out, "GLOBAL _main") {
			t.Errorf("expected GLOBAL _main, got:\n%s", out)
		}
		if !strings.Contains(out, "_main:") {
			t.Errorf("expected a _main: label, got:\n%s", out)
		}
	}
	if !strings.Contains(unopt, "mov        eax, 0") && !strings.Contains(unopt, "mov eax,0") {
		t.Errorf("expected mov eax, 0 unoptimized, got:\n%s", unopt)
	}
	if !strings.Contains(opt, "xor        eax, eax") && !strings.Contains(opt, "xor eax,eax") {
		t.Errorf("expected xor eax, eax once ReplaceCodeOptimizer runs, got:\n%s", opt)
	}
	if !strings.Contains(unopt, "pop        ebp") || !strings.Contains(unopt, "mov        esp, ebp") && !strings.Contains(unopt, "mov esp,ebp") {
		t.Errorf("expected the unoptimized epilogue to keep its frame pointer, got:\n%s", unopt)
	}
	// main is a leaf function, so StackPointerOptimizer elides its frame
	// pointer entirely: no push/pop ebp, and no leftover mov esp, ebp
	// (which would otherwise clobber esp with the caller's ebp).
	if strings.Contains(opt, "ebp") {
		t.Errorf("expected the optimized epilogue to have no ebp references at all, got:\n%s", opt)
	}
	if !strings.Contains(opt, "ret") {
		t.Errorf("expected the optimized output to still end in ret, got:\n%s", opt)
	}
}

func TestScenarioArithmeticExpression(t *testing.T) {
	src := "int main() { int a, b; a = 1 + 2 * 3; b = a - 4; return b; }"
	unopt, opt := compileScenario(t, src)

	if !strings.Contains(opt, "7") {
		t.Errorf("expected the folded constant 7 as an immediate, got:\n%s", opt)
	}
	if !strings.Contains(unopt, "imul") {
		t.Errorf("expected an imul for 2 * 3 unoptimized, got:\n%s", unopt)
	}
}

func TestScenarioGlobalAndFunctionCall(t *testing.T) {
	src := "int x; int f(int a, int b) { return a + b; } int main() { return f(1, 2); }"
	unopt, _ := compileScenario(t, src)

	if !strings.Contains(unopt, "COMMON _x 4") {
		t.Errorf("expected COMMON _x 4, got:\n%s", unopt)
	}
	if !strings.Contains(unopt, "call       _f") {
		t.Errorf("expected a call _f, got:\n%s", unopt)
	}
	if !strings.Contains(unopt, "add        esp, 8") && !strings.Contains(unopt, "add esp,8") {
		t.Errorf("expected the caller to clean up 8 bytes of pushed arguments, got:\n%s", unopt)
	}
}

func TestScenarioWhileLoop(t *testing.T) {
	src := "int main() { int i; i = 0; while (i < 10) { i += 1; } return i; }"
	unopt, _ := compileScenario(t, src)

	if !strings.Contains(unopt, "while_test_") {
		t.Errorf("expected a while_test_ label, got:\n%s", unopt)
	}
	if !strings.Contains(unopt, "while_done_") {
		t.Errorf("expected a while_done_ label, got:\n%s", unopt)
	}
	if !strings.Contains(unopt, "jmp        while_test_") {
		t.Errorf("expected the loop body to jump back to while_test_, got:\n%s", unopt)
	}
}

func TestScenarioForwardCallArityMismatchEmitsNoCode(t *testing.T) {
	src := "int main() { return g(1); } int g(int a, int b) { return a+b; }"
	_, err := run(config.Options{}, src)
	if err == nil {
		t.Fatal("expected an arity mismatch error, got none")
	}
}

func TestScenarioRedeclarationEmitsNoCode(t *testing.T) {
	src := "int main() { int a; int a; return 0; }"
	_, err := run(config.Options{}, src)
	if err == nil {
		t.Fatal("expected a redeclaration error, got none")
	}
}

func TestScenarioPrintASTSkipsCodeGeneration(t *testing.T) {
	out, err := run(config.Options{PrintAST: true}, "int main() { return 0; }")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if strings.Contains(out, "GLOBAL") {
		t.Errorf("expected -ast output to skip assembly entirely, got:\n%s", out)
	}
	if !strings.Contains(out, "Program") {
		t.Errorf("expected the AST dump to start at Program, got:\n%s", out)
	}
}
