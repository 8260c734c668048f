package codegen

import (
	"strings"
	"testing"

	"tinyarmc/ast"
	"tinyarmc/lexer"
	"tinyarmc/parser"
	"tinyarmc/semantics"
)

// compile runs the full front end (lex -> parse -> analyze -> generate)
// and fails the test immediately on any stage error, mirroring the
// reference full-pipeline test.
func compile(t *testing.T, source string) string {
	t.Helper()

	lex := lexer.New(source)
	tokens, err := lex.Scan()
	if err != nil {
		t.Fatalf("lexing failed: %v", err)
	}

	p := parser.Make(tokens)
	program, err := p.Parse()
	if err != nil {
		t.Fatalf("parsing failed: %v", err)
	}

	if err := semantics.Analyze(program); err != nil {
		t.Fatalf("semantic analysis failed: %v", err)
	}

	asm, err := Generate(program)
	if err != nil {
		t.Fatalf("code generation failed: %v", err)
	}
	return asm
}

func TestGenerateEmitsEntryPointAndAlignment(t *testing.T) {
	asm := compile(t, "int main() { return 0; }")
	if !strings.Contains(asm, ".global _start") {
		t.Errorf("missing .global _start directive:\n%s", asm)
	}
	if !strings.Contains(asm, ".align 2") {
		t.Errorf("missing .align 2 directive:\n%s", asm)
	}
	if !strings.Contains(asm, "_start:") {
		t.Errorf("missing _start label:\n%s", asm)
	}
}

func TestGenerateArithmeticPrecedence(t *testing.T) {
	// 2 + 3 * 4 = 14: multiplication must be lowered before addition.
	asm := compile(t, "int main() { return 2 + 3 * 4; }")
	if !strings.Contains(asm, "mul") {
		t.Errorf("expected a mul instruction:\n%s", asm)
	}
	if !strings.Contains(asm, "add") {
		t.Errorf("expected an add instruction:\n%s", asm)
	}
	if strings.Index(asm, "mul") > strings.Index(asm, "add x0, x0, x1") {
		t.Errorf("mul must precede the outer add:\n%s", asm)
	}
}

func TestGenerateDeclareAndReuse(t *testing.T) {
	// int a = 5; int b = a * a; return b - a; => 25 - 5 = 20
	asm := compile(t, "int main() { int a = 5; int b = a * a; return b - a; }")
	if !strings.Contains(asm, "sub x0, x0, x1") {
		t.Errorf("expected a final subtract:\n%s", asm)
	}
}

func TestGenerateLogicalOperatorsShortCircuit(t *testing.T) {
	asm := compile(t, "int main() { return 1 && 0; }")
	if !strings.Contains(asm, "and_right_") {
		t.Errorf("expected a short-circuit label for &&:\n%s", asm)
	}

	asm = compile(t, "int main() { return 0 || 7; }")
	if !strings.Contains(asm, "or_right_") {
		t.Errorf("expected a short-circuit label for ||:\n%s", asm)
	}
}

func TestGenerateIfElseBranches(t *testing.T) {
	asm := compile(t, "int main() { if (1) { return 10; } else { return 20; } }")
	if !strings.Contains(asm, "if_else_") || !strings.Contains(asm, "if_end_") {
		t.Errorf("expected if_else/if_end labels:\n%s", asm)
	}
}

func TestGenerateIfWithoutElse(t *testing.T) {
	asm := compile(t, "int main() { if (0) { return 1; } return 2; }")
	if !strings.Contains(asm, "if_end_") {
		t.Errorf("expected an if_end label:\n%s", asm)
	}
	if strings.Contains(asm, "if_else_") {
		t.Errorf("a single-branch if must not emit an else label:\n%s", asm)
	}
}

func TestGenerateUnaryNegate(t *testing.T) {
	asm := compile(t, "int main() { return -5; }")
	if !strings.Contains(asm, "neg x0, x0") {
		t.Errorf("expected neg instruction:\n%s", asm)
	}
}

func TestGenerateConditionalExpression(t *testing.T) {
	asm := compile(t, "int main() { return 1 ? 10 : 20; }")
	if !strings.Contains(asm, "cond_else_") || !strings.Contains(asm, "cond_end_") {
		t.Errorf("expected cond_else/cond_end labels:\n%s", asm)
	}
}

func TestGenerateImplicitZeroReturnWhenBodyFallsOff(t *testing.T) {
	asm := compile(t, "void main() { int a = 1; }")
	if strings.Count(asm, "ret") != 1 {
		t.Errorf("expected exactly one implicit epilogue:\n%s", asm)
	}
	if !strings.Contains(asm, "mov x0, #0") {
		t.Errorf("expected the implicit return to zero x0:\n%s", asm)
	}
}

func TestGenerateParametersAreStoredFromArgumentRegisters(t *testing.T) {
	asm := compile(t, "int main(int n) { return n; }")
	if !strings.Contains(asm, "str x0, [fp, #-16]") {
		t.Errorf("expected the first parameter stored from x0 into the first slot:\n%s", asm)
	}
}

func TestGenerateRejectsUnknownIdentifierAsInvariantViolation(t *testing.T) {
	// Bypass semantics.Analyze entirely: codegen must treat a reference to
	// an unbound name as a developer-error invariant violation, never a
	// silent miscompile.
	program := &ast.Program{Functions: []ast.Function{{
		Name: "main", ReturnType: ast.Int,
		Body: []ast.Statement{
			ast.Return{Value: ast.Var{Name: "ghost"}},
		},
	}}}

	_, err := Generate(program)
	if err == nil {
		t.Fatal("expected an error for an unresolved identifier")
	}
	if _, ok := err.(InvariantError); !ok {
		t.Fatalf("expected InvariantError, got %T: %v", err, err)
	}
}
