// Command wisprun loads a Wasm module and a YAML call manifest,
// invokes the manifest's export, and prints the result.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/ralphmorton/wisp"
	"github.com/ralphmorton/wisp/host"
)

func main() {
	doMain(os.Stdout, os.Stderr, os.Exit)
}

// doMain is separated out for the purpose of unit testing.
func doMain(stdOut, stdErr io.Writer, exit func(code int)) {
	flag.CommandLine.SetOutput(stdErr)

	var help bool
	flag.BoolVar(&help, "h", false, "print usage")
	var verbose bool
	flag.BoolVar(&verbose, "v", false, "verbose logging")

	flag.Parse()

	if help || flag.NArg() != 2 {
		printUsage(stdErr)
		exit(1)
		return
	}

	wasmPath := flag.Arg(0)
	manifestPath := flag.Arg(1)

	log := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(stdErr, "error building logger: %v\n", err)
			exit(1)
			return
		}
		log = l
	}
	defer log.Sync() //nolint:errcheck

	source, err := os.ReadFile(wasmPath)
	if err != nil {
		fmt.Fprintf(stdErr, "error reading wasm binary: %v\n", err)
		exit(1)
		return
	}

	m, err := loadManifest(manifestPath)
	if err != nil {
		fmt.Fprintf(stdErr, "error loading manifest: %v\n", err)
		exit(1)
		return
	}

	rt, err := wisp.New(source, host.Externs{}, wisp.WithLogger(log))
	if err != nil {
		fmt.Fprintf(stdErr, "error instantiating module: %v\n", err)
		exit(1)
		return
	}

	result, err := rt.Call(m.Export, m.values()...)
	if err != nil {
		fmt.Fprintf(stdErr, "error calling %q: %v\n", m.Export, err)
		exit(1)
		return
	}

	if result == nil {
		fmt.Fprintln(stdOut, "(no result)")
		exit(0)
		return
	}
	if v, ok := result.AsI32(); ok {
		fmt.Fprintln(stdOut, v)
	} else {
		fmt.Fprintln(stdOut, "(non-i32 result)")
	}
	exit(0)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "wisprun: run an exported function from a Wasm module")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "usage: wisprun [-v] <module.wasm> <call.yaml>")
	flag.PrintDefaults()
}
