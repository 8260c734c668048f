package ast

// Parameter is a single declared function parameter: its type and name.
type Parameter struct {
	Type Type
	Name string
}

// Function is a function definition: its declared return type, name,
// ordered parameter list, and ordered sequence of top-level statements
// forming the body.
type Function struct {
	ReturnType Type
	Name       string
	Parameters []Parameter
	Body       []Statement
}

// Program is an ordered sequence of function definitions. Only the first
// function is lowered as the entry point by the code generator; see
// codegen package docs.
type Program struct {
	Functions []Function
}
