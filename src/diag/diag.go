// Package diag implements the diagnostic stream and the driver-owned tally
// of spec.md §6.2/§7: warnings and errors are accumulated across an entire
// pass run instead of short-circuiting, and the pipeline driver suppresses
// code generation only once every pass has had a chance to report.
//
// Grounded on the teacher's accumulate-don't-short-circuit style
// (ir/validate.go's ValidateTree collecting every worker's error before
// returning) and util/perror.go's error-listener shape, simplified to a
// plain struct because the core pipeline no longer fans passes out across
// goroutines (spec.md §5).
package diag

import "fmt"

// Severity distinguishes a warning from a fatal error (spec.md §7).
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "Error"
	}
	return "Warning"
}

// Diagnostic is one reported warning or error.
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int // 0 if no source line applies.
}

// String renders d in the "Warning: ..."/"Error: ..." form of spec.md §6.2.
func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", d.Severity, d.Message, d.Line)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Tally is the driver-owned accumulator threaded through every semantic
// pass. Zero value is ready to use.
type Tally struct {
	diags     []Diagnostic
	optimized int
}

// Errorf records a fatal semantic error at the given source line (0 if not
// applicable).
func (t *Tally) Errorf(line int, format string, args ...interface{}) {
	t.diags = append(t.diags, Diagnostic{Severity: Error, Message: fmt.Sprintf(format, args...), Line: line})
}

// Warnf records a non-fatal semantic warning.
func (t *Tally) Warnf(line int, format string, args ...interface{}) {
	t.diags = append(t.diags, Diagnostic{Severity: Warning, Message: fmt.Sprintf(format, args...), Line: line})
}

// Optimized records n additional peephole/constant-fold rewrites, per
// spec.md §4.7's "every rewrite increments a global optimized counter."
func (t *Tally) Optimized(n int) {
	t.optimized += n
}

// Counts returns (errors, warnings, optimized) per spec.md §6.2.
func (t *Tally) Counts() (errors, warnings, optimized int) {
	for _, d := range t.diags {
		if d.Severity == Error {
			errors++
		} else {
			warnings++
		}
	}
	return errors, warnings, t.optimized
}

// HasErrors reports whether any fatal error was recorded; the pipeline
// driver must not generate code when this is true.
func (t *Tally) HasErrors() bool {
	errs, _, _ := t.Counts()
	return errs > 0
}

// Diagnostics returns every recorded diagnostic in report order.
func (t *Tally) Diagnostics() []Diagnostic {
	return t.diags
}
