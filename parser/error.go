package parser

import "fmt"

// SyntaxError is raised when the token stream does not match the tiny-C
// grammar.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func CreateSyntaxError(line, column int, message string) SyntaxError {
	return SyntaxError{Line: line, Column: column, Message: message}
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("💥 syntax error:\nline:%d, column:%d - %s", e.Line, e.Column, e.Message)
}
