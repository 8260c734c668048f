package codegen

import (
	"strconv"

	"tinyarmc/ast"
)

// Every ExpressionVisitor method below leaves the expression's value in
// the top 16-byte slot of the stack (spec §3's invariant). Binary and
// Unary operands are always lowered left-to-right, matching source
// order of side effects.

func (g *Generator) VisitConst(c ast.Const) any {
	g.emit("mov x0, #%d", c.Value)
	g.emit("sub sp, sp, #0x10")
	g.emit("str x0, [sp]")
	return nil
}

func (g *Generator) VisitVar(v ast.Var) any {
	sym := g.lookup(v.Name)
	g.emit("ldr x0, [fp, #-%d]", sym.offset)
	g.emit("sub sp, sp, #0x10")
	g.emit("str x0, [sp]")
	return nil
}

func (g *Generator) VisitGroup(gr ast.Group) any {
	gr.Inner.Accept(g)
	return nil
}

func (g *Generator) VisitUnary(u ast.Unary) any {
	u.Operand.Accept(g)
	g.emit("ldr x0, [sp]")
	g.emit("add sp, sp, #0x10")

	switch u.Op {
	case ast.ArithmeticNegate:
		g.emit("neg x0, x0")
	case ast.BitwiseNot:
		g.emit("mvn x0, x0")
	case ast.LogicalNot:
		g.emit("cmp x0, #0")
		g.emit("cset x0, EQ")
	}

	g.emit("sub sp, sp, #0x10")
	g.emit("str x0, [sp]")
	return nil
}

func (g *Generator) VisitBinary(b ast.Binary) any {
	switch b.Op {
	case ast.LogicalOr:
		g.generateLogicalOr(b)
		return nil
	case ast.LogicalAnd:
		g.generateLogicalAnd(b)
		return nil
	}

	b.Left.Accept(g)
	b.Right.Accept(g)

	g.emit("ldr x1, [sp]")
	g.emit("ldr x0, [sp, #0x10]")
	g.emit("add sp, sp, #32")

	switch b.Op {
	case ast.Add:
		g.emit("add x0, x0, x1")
	case ast.Subtract:
		g.emit("sub x0, x0, x1")
	case ast.Multiply:
		g.emit("mul x0, x0, x1")
	case ast.Divide:
		g.emit("sdiv x0, x0, x1")
	case ast.Equal:
		g.emitComparison("EQ")
	case ast.NotEqual:
		g.emitComparison("NE")
	case ast.Greater:
		g.emitComparison("GT")
	case ast.Less:
		g.emitComparison("LT")
	case ast.GreaterEqual:
		g.emitComparison("GE")
	case ast.LessEqual:
		g.emitComparison("LE")
	}

	g.emit("sub sp, sp, #0x10")
	g.emit("str x0, [sp]")
	return nil
}

// emitComparison assumes x0/x1 already hold the left/right operands and
// leaves the 0/1 boolean result in x0.
func (g *Generator) emitComparison(cond string) {
	g.emit("cmp x0, x1")
	g.emit("mov x0, #0")
	g.emit("cset x0, %s", cond)
}

// generateLogicalOr short-circuits: if the left operand is non-zero, the
// right operand is never evaluated and the result is forced to 1.
func (g *Generator) generateLogicalOr(b ast.Binary) {
	n := g.newLabelSuffix()
	rightLabel := labelName("or_right", n)
	endLabel := labelName("or_end", n)

	b.Left.Accept(g)
	g.emit("ldr x0, [sp]")
	g.emit("cmp x0, #0")
	g.emit("b.eq %s", rightLabel)

	g.emit("mov x0, #1")
	g.emit("str x0, [sp]")
	g.emit("b %s", endLabel)

	g.label(rightLabel)
	g.emit("add sp, sp, #0x10")
	b.Right.Accept(g)
	g.emit("ldr x0, [sp]")
	g.emit("add sp, sp, #0x10")
	g.emit("cmp x0, #0")
	g.emit("mov x0, #0")
	g.emit("cset x0, NE")
	g.emit("sub sp, sp, #0x10")
	g.emit("str x0, [sp]")

	g.label(endLabel)
}

// generateLogicalAnd short-circuits: if the left operand is zero, the
// right operand is never evaluated and the result is forced to 0.
func (g *Generator) generateLogicalAnd(b ast.Binary) {
	n := g.newLabelSuffix()
	rightLabel := labelName("and_right", n)
	endLabel := labelName("and_end", n)

	b.Left.Accept(g)
	g.emit("ldr x0, [sp]")
	g.emit("cmp x0, #0")
	g.emit("b.ne %s", rightLabel)

	g.emit("mov x0, #0")
	g.emit("str x0, [sp]")
	g.emit("b %s", endLabel)

	g.label(rightLabel)
	g.emit("add sp, sp, #0x10")
	b.Right.Accept(g)
	g.emit("ldr x0, [sp]")
	g.emit("add sp, sp, #0x10")
	g.emit("cmp x0, #0")
	g.emit("mov x0, #0")
	g.emit("cset x0, NE")
	g.emit("sub sp, sp, #0x10")
	g.emit("str x0, [sp]")

	g.label(endLabel)
}

func (g *Generator) VisitAssignment(a ast.Assignment) any {
	a.Value.Accept(g)
	sym := g.lookup(a.Name)
	g.emit("ldr x0, [sp]")
	g.emit("str x0, [fp, #-%d]", sym.offset)
	// the value stays on the stack: an assignment's result is its
	// assigned value (spec §3).
	return nil
}

// VisitConditional lowers the ternary operator. Exactly one of Then/Else
// is ever executed at runtime; both are lowered so the generator never
// needs to know at compile time which branch will run.
func (g *Generator) VisitConditional(c ast.Conditional) any {
	c.Cond.Accept(g)
	g.emit("ldr x0, [sp]")
	g.emit("add sp, sp, #0x10")

	n := g.newLabelSuffix()
	elseLabel := labelName("cond_else", n)
	endLabel := labelName("cond_end", n)

	g.emit("cmp x0, #0")
	g.emit("b.eq %s", elseLabel)

	c.Then.Accept(g)
	g.emit("b %s", endLabel)

	g.label(elseLabel)
	c.Else.Accept(g)

	g.label(endLabel)
	return nil
}

func labelName(prefix string, n int) string {
	return prefix + "_" + strconv.Itoa(n)
}
