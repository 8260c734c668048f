package parser

import (
	"testing"

	"tinyarmc/ast"
	"tinyarmc/lexer"
)

func TestPrintStatementReturn(t *testing.T) {
	stmt := ast.Return{Value: ast.Binary{Op: ast.Add, Left: ast.Const{Value: 2}, Right: ast.Const{Value: 3}}}
	got := PrintStatement(stmt)
	want := "return (2 + 3);"
	if got != want {
		t.Errorf("PrintStatement() = %q, want %q", got, want)
	}
}

func TestPrintStatementDeclareWithoutInitializer(t *testing.T) {
	stmt := ast.Declare{Type: ast.Int, Name: "a"}
	got := PrintStatement(stmt)
	want := "int a;"
	if got != want {
		t.Errorf("PrintStatement() = %q, want %q", got, want)
	}
}

// TestRoundTripReparsesToEquivalentStatement exercises spec §8's
// round-trip law at a coarse level: re-parsing the pretty-printer's
// output yields the same number of functions and body statements.
func TestRoundTripReparsesToEquivalentStatement(t *testing.T) {
	original := "int main(){ int a=5; int b=a*a; return b-a; }"
	program := mustParse(t, original)

	printed := PrintProgram(program)
	reparsed := mustParse(t, printed)

	if len(reparsed.Functions) != len(program.Functions) {
		t.Fatalf("function count changed after round-trip: got %d, want %d", len(reparsed.Functions), len(program.Functions))
	}
	if len(reparsed.Functions[0].Body) != len(program.Functions[0].Body) {
		t.Fatalf("statement count changed after round-trip: got %d, want %d",
			len(reparsed.Functions[0].Body), len(program.Functions[0].Body))
	}
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	tokens, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	program, err := Make(tokens).Parse()
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	return program
}
