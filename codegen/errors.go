package codegen

import "fmt"

// InvariantError indicates the code generator encountered a condition
// semantic analysis should already have rejected before code generation
// is ever reached (e.g. an unresolved identifier). It should never
// surface for a program that has passed semantics.Analyze.
type InvariantError struct {
	Message string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("🤖 DeveloperError: %s", e.Message)
}
