// Command cc is the primary compiler driver: a single positional
// argument names the source file, and the generated AArch64 assembly is
// written alongside it (spec §6).
package main

import (
	"fmt"
	"os"

	"tinyarmc/internal/driver"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "💥 NoInputFile: usage: cc <source-file>")
		os.Exit(1)
	}

	outPath, err := driver.CompileFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	fmt.Println(outPath)
}
