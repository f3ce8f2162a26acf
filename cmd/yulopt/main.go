package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iley/yulopt/internal/ast"
	"github.com/iley/yulopt/internal/config"
	"github.com/iley/yulopt/internal/loader"
	"github.com/iley/yulopt/internal/opt"
	"github.com/iley/yulopt/internal/util"
)

func main() {
	outputString := flag.String("o", "-", "output file name")
	planString := flag.String("plan", "", "TOML file with the memory slot assignment")
	formatString := flag.String("format", "yul", "output format: yul or sexp")
	verbose := flag.Bool("v", false, "print a summary of the changes to stderr")
	flag.Parse()

	if len(flag.Args()) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: yulopt [options] <input file>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *formatString != "yul" && *formatString != "sexp" {
		fmt.Fprintf(os.Stderr, "unknown output format: %s\n", *formatString)
		os.Exit(1)
	}

	inputFileName := flag.Args()[0]
	inputFile, err := os.Open(inputFileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening input file: %v\n", err)
		os.Exit(1)
	}
	program, err := loader.Load(inputFile, inputFileName)
	inputFile.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading program: %v\n", err)
		os.Exit(1)
	}

	plan := &config.Plan{Slots: map[string]uint64{}}
	if *planString != "" {
		plan, err = config.LoadPlan(*planString)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading plan: %v\n", err)
			os.Exit(1)
		}
	}
	settings, err := plan.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error in plan: %v\n", err)
		os.Exit(1)
	}
	d, err := plan.GetDialect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error in plan: %v\n", err)
		os.Exit(1)
	}

	result, err := optimize(opt.NewStepContext(d, program), settings, program)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "moved %d variables to memory at %s\n", len(settings.MemorySlots), settings.ReservedMemory.Hex())
		for _, trampoline := range result.Trampolines {
			fmt.Fprintf(os.Stderr, "added trampoline %s with %d parameters\n", trampoline.Name, len(trampoline.Parameters)-1)
		}
	}

	var output io.Writer
	if *outputString == "-" {
		output = os.Stdout
	} else {
		outputFile, err := os.Create(*outputString)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			if err := outputFile.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to close output file: %v\n", err)
			}
		}()
		output = outputFile
	}

	if *formatString == "sexp" {
		fmt.Fprintf(output, "%s\n", program.String())
	} else {
		ast.NewPrinter(output).PrintProgram(program)
	}
}

// optimize runs the optimiser and turns a broken internal invariant into an error.
// The program must not be used after an error.
func optimize(ctx *opt.StepContext, settings opt.Settings, program *ast.Block) (result opt.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			var internal *util.InternalError
			if e, ok := r.(error); ok && errors.As(e, &internal) {
				err = internal
				return
			}
			panic(r)
		}
	}()
	return opt.Run(ctx, settings, program), nil
}
