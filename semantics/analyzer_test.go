package semantics

import (
	"testing"

	"tinyarmc/ast"
)

func TestAnalyzeVariableBehavior(t *testing.T) {
	tests := []struct {
		name     string
		program  *ast.Program
		hasError bool
	}{
		{
			name: "declared then returned -> success",
			program: &ast.Program{Functions: []ast.Function{{
				Name: "main", ReturnType: ast.Int,
				Body: []ast.Statement{
					ast.Declare{Type: ast.Int, Name: "a", Init: ast.Const{Value: 5}},
					ast.Return{Value: ast.Var{Name: "a"}},
				},
			}}},
			hasError: false,
		},
		{
			name: "undeclared variable read -> error",
			program: &ast.Program{Functions: []ast.Function{{
				Name: "main", ReturnType: ast.Int,
				Body: []ast.Statement{
					ast.Return{Value: ast.Var{Name: "y"}},
				},
			}}},
			hasError: true,
		},
		{
			name: "duplicate declare -> error",
			program: &ast.Program{Functions: []ast.Function{{
				Name: "main", ReturnType: ast.Int,
				Body: []ast.Statement{
					ast.Declare{Type: ast.Int, Name: "a"},
					ast.Declare{Type: ast.Int, Name: "a"},
					ast.Return{Value: ast.Const{Value: 0}},
				},
			}}},
			hasError: true,
		},
		{
			name: "declare inside compound remains visible after block -> success",
			program: &ast.Program{Functions: []ast.Function{{
				Name: "main", ReturnType: ast.Int,
				Body: []ast.Statement{
					ast.Compound{Statements: []ast.Statement{
						ast.Declare{Type: ast.Int, Name: "a", Init: ast.Const{Value: 1}},
					}},
					ast.Return{Value: ast.Var{Name: "a"}},
				},
			}}},
			hasError: false,
		},
		{
			name: "parameter usable without declare -> success",
			program: &ast.Program{Functions: []ast.Function{{
				Name: "main", ReturnType: ast.Int,
				Parameters: []ast.Parameter{{Type: ast.Int, Name: "n"}},
				Body: []ast.Statement{
					ast.Return{Value: ast.Var{Name: "n"}},
				},
			}}},
			hasError: false,
		},
		{
			name: "assignment to undeclared name -> error",
			program: &ast.Program{Functions: []ast.Function{{
				Name: "main", ReturnType: ast.Int,
				Body: []ast.Statement{
					ast.ExprStmt{Value: ast.Assignment{Name: "z", Value: ast.Const{Value: 1}}},
					ast.Return{Value: ast.Const{Value: 0}},
				},
			}}},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Analyze(tt.program)
			if tt.hasError && err == nil {
				t.Errorf("expected an error but got nil")
			}
			if !tt.hasError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAnalyzeReportsFunctionRedefinedKind(t *testing.T) {
	program := &ast.Program{Functions: []ast.Function{{
		Name: "main", ReturnType: ast.Int,
		Body: []ast.Statement{
			ast.Declare{Type: ast.Int, Name: "a"},
			ast.Declare{Type: ast.Int, Name: "a"},
			ast.Return{Value: ast.Const{Value: 0}},
		},
	}}}

	err := Analyze(program)
	if _, ok := err.(FunctionRedefinedError); !ok {
		t.Fatalf("expected FunctionRedefinedError, got %T: %v", err, err)
	}
}

func TestAnalyzeReportsUndeclaredVariableKind(t *testing.T) {
	program := &ast.Program{Functions: []ast.Function{{
		Name: "main", ReturnType: ast.Int,
		Body: []ast.Statement{
			ast.Return{Value: ast.Var{Name: "y"}},
		},
	}}}

	err := Analyze(program)
	if _, ok := err.(UndeclaredVariableError); !ok {
		t.Fatalf("expected UndeclaredVariableError, got %T: %v", err, err)
	}
}
