// Command ccdump is a debug and introspection tool for the compiler
// front end: subcommands dump the token stream, the pretty-printed AST,
// or the generated assembly for a single source file, without writing
// any output file to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"tinyarmc/codegen"
	"tinyarmc/lexer"
	"tinyarmc/parser"
	"tinyarmc/semantics"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&tokensCmd{}, "")
	subcommands.Register(&astCmd{}, "")
	subcommands.Register(&asmCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}

func readSource(f *flag.FlagSet) (string, subcommands.ExitStatus, bool) {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return "", subcommands.ExitUsageError, false
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file:\n\t%v\n", err)
		return "", subcommands.ExitFailure, false
	}
	return string(data), subcommands.ExitSuccess, true
}

type tokensCmd struct{}

func (*tokensCmd) Name() string             { return "tokens" }
func (*tokensCmd) Synopsis() string         { return "Dump the token stream for a source file" }
func (*tokensCmd) Usage() string            { return "ccdump tokens <file>\n" }
func (*tokensCmd) SetFlags(f *flag.FlagSet) {}

func (*tokensCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	source, status, ok := readSource(f)
	if !ok {
		return status
	}

	lex := lexer.New(source)
	tokens, err := lex.Scan()
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 lex error:\n\t%v\n", err)
		return subcommands.ExitFailure
	}
	for _, tok := range tokens {
		fmt.Printf("%-14s %q\tline:%d col:%d\n", tok.Type, tok.Lexeme, tok.Line, tok.Column)
	}
	return subcommands.ExitSuccess
}

type astCmd struct{}

func (*astCmd) Name() string             { return "ast" }
func (*astCmd) Synopsis() string         { return "Dump the pretty-printed AST for a source file" }
func (*astCmd) Usage() string            { return "ccdump ast <file>\n" }
func (*astCmd) SetFlags(f *flag.FlagSet) {}

func (*astCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	source, status, ok := readSource(f)
	if !ok {
		return status
	}

	lex := lexer.New(source)
	tokens, err := lex.Scan()
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 lex error:\n\t%v\n", err)
		return subcommands.ExitFailure
	}

	p := parser.Make(tokens)
	program, err := p.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Print(parser.PrintProgram(program))
	return subcommands.ExitSuccess
}

type asmCmd struct{}

func (*asmCmd) Name() string             { return "asm" }
func (*asmCmd) Synopsis() string         { return "Dump the generated assembly for a source file" }
func (*asmCmd) Usage() string            { return "ccdump asm <file>\n" }
func (*asmCmd) SetFlags(f *flag.FlagSet) {}

func (*asmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	source, status, ok := readSource(f)
	if !ok {
		return status
	}

	lex := lexer.New(source)
	tokens, err := lex.Scan()
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 lex error:\n\t%v\n", err)
		return subcommands.ExitFailure
	}

	p := parser.Make(tokens)
	program, err := p.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return subcommands.ExitFailure
	}

	if err := semantics.Analyze(program); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return subcommands.ExitFailure
	}

	asm, err := codegen.Generate(program)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Print(asm)
	return subcommands.ExitSuccess
}
