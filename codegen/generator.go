// Package codegen lowers a validated ast.Program into AArch64 assembly
// text, using an evaluation-stack discipline on top of the processor
// stack and a frame-pointer-addressed local variable layout. This is the
// core of the compiler; see spec §4.2.
package codegen

import (
	"fmt"
	"strings"

	"tinyarmc/ast"
)

// local is a symbol table entry: a declared local's type and its
// non-negative byte offset from the frame pointer.
type local struct {
	typ    ast.Type
	offset int
}

// Generator holds the mutable state threaded through one function's
// lowering: the output buffer, the per-function symbol table, the frame
// offset of the next local, and a label counter that is never reset
// within a compilation (labels must be globally unique; see spec §4.2's
// label-allocation rule).
type Generator struct {
	out          strings.Builder
	symtab       map[string]local
	frameOffset  int
	labelCounter int
}

// paramRegisters are the AAPCS64 integer argument registers used to
// marshal a function's declared parameters into their frame slots.
var paramRegisters = []string{"x0", "x1", "x2", "x3", "x4", "x5", "x6", "x7"}

// Generate lowers program into AArch64 assembly text. Only the first
// function is lowered as the entry point; calling between user-defined
// functions is out of scope (see spec §1's Non-goals and §9's note on
// multiple functions).
func Generate(program *ast.Program) (asm string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(InvariantError); ok {
				err = ie
				return
			}
			panic(r)
		}
	}()

	g := &Generator{}
	g.out.WriteString(".global _start\n")
	g.out.WriteString(".align 2\n\n")

	if len(program.Functions) == 0 {
		return g.out.String(), nil
	}

	g.generateFunction(program.Functions[0])
	return g.out.String(), nil
}

func (g *Generator) label(name string) {
	g.out.WriteString(name)
	g.out.WriteString(":\n")
}

func (g *Generator) emit(format string, args ...any) {
	g.out.WriteString("\t")
	fmt.Fprintf(&g.out, format, args...)
	g.out.WriteString("\n")
}

// newLabelSuffix returns a fresh, compilation-wide unique integer used to
// build a family of related labels (e.g. "if_else_N" / "if_end_N")
// sharing one N, per spec §4.2.
func (g *Generator) newLabelSuffix() int {
	n := g.labelCounter
	g.labelCounter++
	return n
}

func (g *Generator) beginFunction() {
	g.symtab = make(map[string]local)
	g.frameOffset = 0
}

func (g *Generator) generateFunction(fn ast.Function) {
	g.beginFunction()

	g.label("_start")
	g.emit("stp fp, lr, [sp, #-16]!")
	g.emit("mov fp, sp")

	g.storeParameters(fn.Parameters)

	for _, stmt := range fn.Body {
		stmt.Accept(g)
	}

	if !alwaysReturns(fn.Body) {
		g.emit("mov x0, #0")
		g.emitEpilogue()
	}
}

func (g *Generator) storeParameters(params []ast.Parameter) {
	for i, param := range params {
		g.frameOffset += 16
		offset := g.frameOffset
		g.emit("sub sp, sp, #0x10")
		if i < len(paramRegisters) {
			g.emit("str %s, [fp, #-%d]", paramRegisters[i], offset)
		}
		g.symtab[param.Name] = local{typ: param.Type, offset: offset}
	}
}

func (g *Generator) emitEpilogue() {
	g.emit("mov sp, fp")
	g.emit("ldp fp, lr, [sp], #16")
	g.emit("ret")
}

// alwaysReturns reports whether control cannot fall off the end of
// stmts without having already executed a Return. Used to decide whether
// the implicit zero-return epilogue (spec §4.2) is needed.
func alwaysReturns(stmts []ast.Statement) bool {
	if len(stmts) == 0 {
		return false
	}
	return stmtAlwaysReturns(stmts[len(stmts)-1])
}

func stmtAlwaysReturns(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case ast.Return:
		return true
	case ast.Compound:
		return alwaysReturns(s.Statements)
	case ast.If:
		if s.Else == nil {
			return false
		}
		return stmtAlwaysReturns(s.Then) && stmtAlwaysReturns(s.Else)
	default:
		return false
	}
}

func (g *Generator) lookup(name string) local {
	sym, ok := g.symtab[name]
	if !ok {
		panic(InvariantError{Message: fmt.Sprintf("unknown identifier '%s' reached code generation", name)})
	}
	return sym
}
