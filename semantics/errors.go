package semantics

import "fmt"

// UndeclaredVariableError is raised when a Var or Assignment expression
// references a name with no preceding Declare or parameter binding.
type UndeclaredVariableError struct {
	Name string
}

func (e UndeclaredVariableError) Error() string {
	return fmt.Sprintf("💥 SemanticError: name '%s' is not defined", e.Name)
}

// FunctionRedefinedError is raised when a Declare introduces a name
// already present in the current function's name table.
//
// The name is a naming artifact carried over unchanged from the
// reference implementation: the condition it reports is a duplicate
// binding in scope, not a redefinition of a function. Error() reports it
// as a redeclaration; the type name does not appear in that text.
type FunctionRedefinedError struct {
	Name string
}

func (e FunctionRedefinedError) Error() string {
	return fmt.Sprintf("💥 SemanticError: redeclaration of '%s'", e.Name)
}
