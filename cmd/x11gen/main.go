// Command x11gen renders a Go source file from an X11 protocol XML
// description. It is a thin collaborator over the gen package: read
// the file, call gen.Generate, write the result.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/damianoneill/x11/gen"
)

func main() {
	var (
		pkgName = flag.String("package", "", "Go package name for the generated file (required)")
		outPath = flag.String("out", "", "output file path (default: stdout)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s -package NAME [-out FILE] schema.xml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *pkgName == "" || flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	xmlPath := flag.Arg(0)
	xmlDoc, err := os.ReadFile(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "x11gen: %v\n", err)
		os.Exit(1)
	}

	source, err := gen.Generate(xmlDoc, *pkgName, filepath.Base(xmlPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "x11gen: %v\n", err)
		os.Exit(1)
	}

	if *outPath == "" {
		os.Stdout.Write(source)
		return
	}
	if err := os.WriteFile(*outPath, source, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "x11gen: %v\n", err)
		os.Exit(1)
	}
}
