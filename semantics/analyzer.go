// Package semantics implements spec §4.1's declaration-and-name-resolution
// pass: it walks a parsed ast.Program and rejects programs that reference
// an undeclared name or redeclare a name already bound in the same
// function. It performs no type checking beyond name presence.
package semantics

import (
	"tinyarmc/ast"
)

// analyzer walks a single function's statements and expressions,
// recording each declared name in a flat table (no lexical scoping: a
// Compound block does not push a new scope, so a name declared inside a
// block stays visible after it, and a name re-declared inside a block is
// still rejected as a redeclaration).
//
// Invariant violations are raised as a panic of the exported error types
// and recovered by Analyze, mirroring the teacher's ASTCompiler/recover
// discipline so the visitor methods stay free of error-threading.
type analyzer struct {
	declared map[string]bool // name -> initialized
}

// Analyze validates every function in program, returning the first
// violation of spec §4.1's rules it encounters.
func Analyze(program *ast.Program) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case UndeclaredVariableError:
				err = v
			case FunctionRedefinedError:
				err = v
			default:
				panic(r)
			}
		}
	}()

	for _, fn := range program.Functions {
		a := &analyzer{declared: make(map[string]bool)}
		for _, param := range fn.Parameters {
			a.declared[param.Name] = true
		}
		for _, stmt := range fn.Body {
			a.analyzeStatement(stmt)
		}
	}
	return nil
}

func (a *analyzer) analyzeStatement(stmt ast.Statement) {
	stmt.Accept(a)
}

func (a *analyzer) VisitReturn(r ast.Return) any {
	a.analyzeExpr(r.Value)
	return nil
}

func (a *analyzer) VisitExprStmt(e ast.ExprStmt) any {
	a.analyzeExpr(e.Value)
	return nil
}

func (a *analyzer) VisitDeclare(d ast.Declare) any {
	if _, exists := a.declared[d.Name]; exists {
		panic(FunctionRedefinedError{Name: d.Name})
	}
	a.declared[d.Name] = d.Init != nil
	if d.Init != nil {
		a.analyzeExpr(d.Init)
	}
	return nil
}

func (a *analyzer) VisitIf(i ast.If) any {
	a.analyzeExpr(i.Cond)
	a.analyzeStatement(i.Then)
	if i.Else != nil {
		a.analyzeStatement(i.Else)
	}
	return nil
}

func (a *analyzer) VisitCompound(c ast.Compound) any {
	for _, stmt := range c.Statements {
		a.analyzeStatement(stmt)
	}
	return nil
}

func (a *analyzer) analyzeExpr(expr ast.Expression) {
	expr.Accept(a)
}

func (a *analyzer) VisitConst(c ast.Const) any {
	return nil
}

func (a *analyzer) VisitVar(v ast.Var) any {
	if !a.isBound(v.Name) {
		panic(UndeclaredVariableError{Name: v.Name})
	}
	return nil
}

func (a *analyzer) VisitUnary(u ast.Unary) any {
	a.analyzeExpr(u.Operand)
	return nil
}

func (a *analyzer) VisitBinary(b ast.Binary) any {
	a.analyzeExpr(b.Left)
	a.analyzeExpr(b.Right)
	return nil
}

func (a *analyzer) VisitGroup(g ast.Group) any {
	a.analyzeExpr(g.Inner)
	return nil
}

func (a *analyzer) VisitAssignment(asn ast.Assignment) any {
	if !a.isBound(asn.Name) {
		panic(UndeclaredVariableError{Name: asn.Name})
	}
	a.analyzeExpr(asn.Value)
	return nil
}

func (a *analyzer) VisitConditional(c ast.Conditional) any {
	a.analyzeExpr(c.Cond)
	a.analyzeExpr(c.Then)
	a.analyzeExpr(c.Else)
	return nil
}

// isBound reports whether name has any entry in the name table,
// initialized or not. Presence, not initialization, is all spec §4.1 requires for
// Var/Assignment to succeed.
func (a *analyzer) isBound(name string) bool {
	_, ok := a.declared[name]
	return ok
}
