package parser

import (
	"fmt"
	"strconv"
	"strings"

	"tinyarmc/ast"
)

// astPrinter implements ast.ExpressionVisitor and ast.StmtVisitor,
// rendering nodes back into tiny-C concrete syntax rather than an
// inspection format, so that PrintStatement's and PrintProgram's output can be re-lexed and
// re-parsed (see the round-trip property in spec §8).
type astPrinter struct{}

func (p astPrinter) VisitConst(c ast.Const) any {
	return strconv.FormatInt(int64(c.Value), 10)
}

func (p astPrinter) VisitVar(v ast.Var) any {
	return v.Name
}

func (p astPrinter) VisitUnary(u ast.Unary) any {
	var opStr string
	switch u.Op {
	case ast.LogicalNot:
		opStr = "!"
	case ast.BitwiseNot:
		opStr = "~"
	case ast.ArithmeticNegate:
		opStr = "-"
	}
	return fmt.Sprintf("%s%s", opStr, u.Operand.Accept(p))
}

func binaryOpString(op ast.BinaryOp) string {
	switch op {
	case ast.Add:
		return "+"
	case ast.Subtract:
		return "-"
	case ast.Multiply:
		return "*"
	case ast.Divide:
		return "/"
	case ast.Equal:
		return "=="
	case ast.NotEqual:
		return "!="
	case ast.Less:
		return "<"
	case ast.LessEqual:
		return "<="
	case ast.Greater:
		return ">"
	case ast.GreaterEqual:
		return ">="
	case ast.LogicalAnd:
		return "&&"
	case ast.LogicalOr:
		return "||"
	default:
		return "?"
	}
}

func (p astPrinter) VisitBinary(b ast.Binary) any {
	return fmt.Sprintf("(%s %s %s)", b.Left.Accept(p), binaryOpString(b.Op), b.Right.Accept(p))
}

func (p astPrinter) VisitGroup(g ast.Group) any {
	return fmt.Sprintf("(%s)", g.Inner.Accept(p))
}

func (p astPrinter) VisitAssignment(a ast.Assignment) any {
	return fmt.Sprintf("%s = %s", a.Name, a.Value.Accept(p))
}

func (p astPrinter) VisitConditional(c ast.Conditional) any {
	return fmt.Sprintf("(%s ? %s : %s)", c.Cond.Accept(p), c.Then.Accept(p), c.Else.Accept(p))
}

func (p astPrinter) VisitReturn(r ast.Return) any {
	return fmt.Sprintf("return %s;", r.Value.Accept(p))
}

func (p astPrinter) VisitExprStmt(e ast.ExprStmt) any {
	return fmt.Sprintf("%s;", e.Value.Accept(p))
}

func (p astPrinter) VisitDeclare(d ast.Declare) any {
	if d.Init == nil {
		return fmt.Sprintf("%s %s;", d.Type, d.Name)
	}
	return fmt.Sprintf("%s %s = %s;", d.Type, d.Name, d.Init.Accept(p))
}

func (p astPrinter) VisitIf(i ast.If) any {
	if i.Else == nil {
		return fmt.Sprintf("if (%s) %s", i.Cond.Accept(p), i.Then.Accept(p))
	}
	return fmt.Sprintf("if (%s) %s else %s", i.Cond.Accept(p), i.Then.Accept(p), i.Else.Accept(p))
}

func (p astPrinter) VisitCompound(c ast.Compound) any {
	var b strings.Builder
	b.WriteString("{ ")
	for _, stmt := range c.Statements {
		b.WriteString(fmt.Sprintf("%s ", stmt.Accept(p)))
	}
	b.WriteString("}")
	return b.String()
}

// PrintStatement renders a single statement back to tiny-C source.
func PrintStatement(stmt ast.Statement) string {
	result := stmt.Accept(astPrinter{})
	return result.(string)
}

// PrintProgram renders an entire program back to tiny-C source, one
// function per paragraph.
func PrintProgram(program *ast.Program) string {
	var b strings.Builder
	for _, fn := range program.Functions {
		params := make([]string, 0, len(fn.Parameters))
		for _, param := range fn.Parameters {
			params = append(params, fmt.Sprintf("%s %s", param.Type, param.Name))
		}
		b.WriteString(fmt.Sprintf("%s %s(%s) {\n", fn.ReturnType, fn.Name, strings.Join(params, ", ")))
		for _, stmt := range fn.Body {
			b.WriteString("  ")
			b.WriteString(PrintStatement(stmt))
			b.WriteString("\n")
		}
		b.WriteString("}\n")
	}
	return b.String()
}
