package codegen

import "tinyarmc/ast"

func (g *Generator) VisitReturn(r ast.Return) any {
	r.Value.Accept(g)
	g.emit("ldr x0, [sp]")
	g.emit("add sp, sp, #0x10")
	g.emitEpilogue()
	return nil
}

// VisitExprStmt evaluates an expression purely for its side effects and
// discards the value it leaves on the stack: an expression statement
// never changes the stack's resting depth on entry to the next
// statement (the fixed leak described in spec §9).
func (g *Generator) VisitExprStmt(e ast.ExprStmt) any {
	e.Value.Accept(g)
	g.emit("add sp, sp, #0x10")
	return nil
}

// VisitDeclare advances the frame offset and reserves the local's slot
// unconditionally, then — if an initializer is present — lowers it and
// stores its value into that slot.
func (g *Generator) VisitDeclare(d ast.Declare) any {
	g.frameOffset += 16
	offset := g.frameOffset
	g.emit("sub sp, sp, #0x10")
	g.symtab[d.Name] = local{typ: d.Type, offset: offset}

	if d.Init != nil {
		d.Init.Accept(g)
		g.emit("ldr x0, [sp]")
		g.emit("add sp, sp, #0x10")
		g.emit("str x0, [fp, #-%d]", offset)
	}
	return nil
}

// VisitIf lowers both the single-branch and if/else forms with the
// subs/cset/tbnz branch-skip pattern from spec §4.2: the condition is
// evaluated and reduced to a 0/1 flag in w0, and a test-bit-nonzero
// branch skips the Then branch (and, if present, jumps over the Else
// branch at the end of Then) when the condition was zero.
func (g *Generator) VisitIf(i ast.If) any {
	i.Cond.Accept(g)
	g.emit("ldr x0, [sp]")
	g.emit("add sp, sp, #0x10")
	g.emit("subs x0, x0, #0")
	g.emit("cset x0, eq")

	n := g.newLabelSuffix()

	if i.Else == nil {
		endLabel := labelName("if_end", n)
		g.emit("tbnz w0, #0, %s", endLabel)
		i.Then.Accept(g)
		g.label(endLabel)
		return nil
	}

	elseLabel := labelName("if_else", n)
	endLabel := labelName("if_end", n)
	g.emit("tbnz w0, #0, %s", elseLabel)
	i.Then.Accept(g)
	g.emit("b %s", endLabel)
	g.label(elseLabel)
	i.Else.Accept(g)
	g.label(endLabel)
	return nil
}

func (g *Generator) VisitCompound(c ast.Compound) any {
	for _, stmt := range c.Statements {
		stmt.Accept(g)
	}
	return nil
}
