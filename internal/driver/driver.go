// Package driver wires the lexer, parser, semantic analyzer, and code
// generator into the single-file compile pipeline described by spec §6
// and §7, and owns the top-level error-kind tagging and output-file
// naming policy.
package driver

import (
	"fmt"
	"os"
	"strings"

	"tinyarmc/codegen"
	"tinyarmc/lexer"
	"tinyarmc/parser"
	"tinyarmc/semantics"
)

// Kind tags a driver-level failure the way spec §7 requires, so a
// caller (such as cmd/cc) can report a stable reason string without
// inspecting error text.
type Kind int

const (
	KindNoInputFile Kind = iota
	KindIO
	KindParse
	KindUndeclaredVariable
	KindRedeclaration
)

func (k Kind) String() string {
	switch k {
	case KindNoInputFile:
		return "NoInputFile"
	case KindIO:
		return "Io"
	case KindParse:
		return "Parse"
	case KindUndeclaredVariable:
		return "UndeclaredVariable"
	case KindRedeclaration:
		return "Redeclaration"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned by this package's exported
// functions; Kind lets a caller branch on the failure class without
// string matching, while Error() carries the human-readable message
// printed to the error stream.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("💥 %s: %s", e.Kind, e.Message)
}

// CompileFile reads the source at path, runs it through the full
// pipeline, and writes the resulting assembly to the sibling .s file
// described by spec §6, returning that file's path on success.
//
// No output file is written when semantic analysis fails: code
// generation is never reached in that case (spec §7).
func CompileFile(path string) (outputPath string, err error) {
	if path == "" {
		return "", &Error{Kind: KindNoInputFile, Message: "no source file given"}
	}

	source, ioErr := os.ReadFile(path)
	if ioErr != nil {
		return "", &Error{Kind: KindIO, Message: ioErr.Error()}
	}

	asm, compErr := Compile(string(source))
	if compErr != nil {
		return "", compErr
	}

	outputPath = outputPathFor(path)
	if writeErr := os.WriteFile(outputPath, []byte(asm), 0o644); writeErr != nil {
		return "", &Error{Kind: KindIO, Message: writeErr.Error()}
	}
	return outputPath, nil
}

// Compile runs the lex/parse/analyze/generate pipeline over in-memory
// source text and returns the generated assembly. Exported separately
// from CompileFile so the whole pipeline can run on in-memory text
// without a file round-trip.
func Compile(source string) (string, error) {
	lex := lexer.New(source)
	tokens, lexErr := lex.Scan()
	if lexErr != nil {
		return "", &Error{Kind: KindParse, Message: lexErr.Error()}
	}

	p := parser.Make(tokens)
	program, parseErr := p.Parse()
	if parseErr != nil {
		return "", &Error{Kind: KindParse, Message: parseErr.Error()}
	}

	if semErr := semantics.Analyze(program); semErr != nil {
		return "", wrapSemanticError(semErr)
	}

	asm, genErr := codegen.Generate(program)
	if genErr != nil {
		return "", &Error{Kind: KindIO, Message: genErr.Error()}
	}
	return asm, nil
}

func wrapSemanticError(err error) error {
	switch e := err.(type) {
	case semantics.UndeclaredVariableError:
		return &Error{Kind: KindUndeclaredVariable, Message: e.Error()}
	case semantics.FunctionRedefinedError:
		return &Error{Kind: KindRedeclaration, Message: e.Error()}
	default:
		return &Error{Kind: KindParse, Message: err.Error()}
	}
}

// outputPathFor replaces path's trailing extension with .s, or appends
// .s when path has none, per spec §6.
func outputPathFor(path string) string {
	if dot := strings.LastIndexByte(path, '.'); dot > strings.LastIndexByte(path, '/') {
		return path[:dot] + ".s"
	}
	return path + ".s"
}
