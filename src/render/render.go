// Package render turns a finished asmir.Item stream into the textual NASM
// listing a compiler driver writes out (spec.md §6.1).
//
// Grounded on the teacher's util/io.go Writer: its Ins1/Ins2/Ins3/LoadStore/
// Label helpers buffer formatted lines into a strings.Builder and flush to
// an output file, which is exactly the shape kept here (Render builds one
// strings.Builder and returns it). What's dropped is the Writer's
// channel-based fan-in from concurrent worker threads (wc, the Flush/Close
// protocol): spec.md §5 makes the core pipeline strictly sequential, so
// there's only ever one writer and nothing to fan in from.
package render

import (
	"fmt"
	"strings"

	"tinycc/src/asmir"
)

// mnemonicWidth is the left-justified field width a mnemonic (plus its
// optional "dword" qualifier) is padded to before the operand list,
// per spec.md §6.1.
const mnemonicWidth = 11

// Render renders items as one NASM-syntax text listing, terminated by a
// final newline.
func Render(items []asmir.Item) string {
	var sb strings.Builder
	for _, it := range items {
		writeItem(&sb, it)
	}
	return sb.String()
}

func writeItem(sb *strings.Builder, it asmir.Item) {
	switch v := it.(type) {
	case asmir.Label:
		fmt.Fprintf(sb, "%s:\n", v.Name)
	case asmir.Comment:
		fmt.Fprintf(sb, "    ; %s\n", v.Text)
	case asmir.Directive:
		writeDirective(sb, v)
	case asmir.Instruction:
		writeInstruction(sb, v)
	}
}

func writeDirective(sb *strings.Builder, d asmir.Directive) {
	switch d.Kind {
	case asmir.Global:
		fmt.Fprintf(sb, "    GLOBAL %s\n", d.Name)
	case asmir.Extern:
		fmt.Fprintf(sb, "    EXTERN %s\n", d.Name)
	case asmir.Common:
		fmt.Fprintf(sb, "    COMMON %s %d\n", d.Name, d.Size)
	case asmir.Section:
		fmt.Fprintf(sb, "section %s\n", d.Section)
	}
}

// writeInstruction renders one instruction line: four-space indent,
// mnemonic (plus an optional "dword" width qualifier) left-justified to
// mnemonicWidth, the operand list joined by ", ", and an optional
// trailing " ; comment".
func writeInstruction(sb *strings.Builder, ins asmir.Instruction) {
	mnemonic := ins.Op
	if needsDwordQualifier(ins.Args) {
		mnemonic += " dword"
	}

	args := make([]string, len(ins.Args))
	for i, a := range ins.Args {
		args[i] = a.String()
	}

	line := fmt.Sprintf("%-*s%s", mnemonicWidth, mnemonic, strings.Join(args, ", "))
	sb.WriteString("    ")
	sb.WriteString(strings.TrimRight(line, " "))
	if ins.Comment != "" {
		sb.WriteString(" ; ")
		sb.WriteString(ins.Comment)
	}
	sb.WriteString("\n")
}

// needsDwordQualifier implements spec.md §6.1's rule: the qualifier is
// appended iff the argument list is non-empty and contains neither a
// register-name operand nor a LabelRef — i.e. every operand is a bare
// memory reference or immediate, which NASM needs a size hint for.
func needsDwordQualifier(args []asmir.Operand) bool {
	if len(args) == 0 {
		return false
	}
	for _, a := range args {
		switch a.(type) {
		case asmir.RegOperand, asmir.LabelRef:
			return false
		}
	}
	return true
}
