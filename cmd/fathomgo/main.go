// Command fathomgo is the front-end CLI of spec.md §6: three pinned
// one-shot commands (elab/norm/type) over a single surface term, plus an
// additive gen command that drives lowering and emission end to end
// (SPEC_FULL.md §2/§4). Adapted from the teacher's cmd/ailang/main.go: same
// flag-based dispatch, fatih/color-styled output, and Version/Commit/
// BuildTime ldflags block, trimmed to this toolchain's four verbs (no repl,
// no watch, no LSP — spec.md §6 pins a one-shot pipeline, not an interactive
// session).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"fathomgo/internal/core"
	"fathomgo/internal/emit"
	"fathomgo/internal/errors"
	"fathomgo/internal/loader"
	"fathomgo/internal/pipeline"
)

var (
	// Set by ldflags during release builds; "dev"/"unknown" otherwise.
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// bugReportURL is printed alongside a recovered panic's bug diagnostic, the
// front end's last line of defense against an elaborator invariant break
// (spec.md §6's panic-hook path).
const bugReportURL = "https://github.com/fathomgo/fathomgo/issues/new"

func main() {
	defer recoverBug()

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "--version", "-version":
		printVersion()
		return
	case "--help", "-help", "help":
		printHelp()
		return
	case "elab":
		os.Exit(runTermCommand("elab", pipeline.CommandElab, os.Args[2:]))
	case "norm":
		os.Exit(runTermCommand("norm", pipeline.CommandNorm, os.Args[2:]))
	case "type":
		os.Exit(runTermCommand("type", pipeline.CommandType, os.Args[2:]))
	case "gen":
		os.Exit(runGenCommand(os.Args[2:]))
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), os.Args[1])
		printHelp()
		os.Exit(2)
	}
}

func recoverBug() {
	if r := recover(); r != nil {
		report := errors.Bug(fmt.Sprintf("panic: %v", r))
		printReports([]*errors.Report{report})
		fmt.Fprintf(os.Stderr, "\nThis is an internal bug. Please report it at %s\n", cyan(bugReportURL))
		os.Exit(2)
	}
}

func printVersion() {
	fmt.Printf("fathomgo %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("commit: %s\n", Commit)
	}
	if BuildTime != "unknown" {
		fmt.Printf("built:  %s\n", BuildTime)
	}
}

func printHelp() {
	fmt.Println(bold("fathomgo - a binary-data-description language toolchain"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  fathomgo <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s   --surface-term=PATH   print the elaborated term and its type\n", cyan("elab"))
	fmt.Printf("  %s   --surface-term=PATH   elaborate, evaluate, read back, print normal form and type\n", cyan("norm"))
	fmt.Printf("  %s   --surface-term=PATH   print only the type\n", cyan("type"))
	fmt.Printf("  %s    --surface-term=PATH   lower and emit a module as Go source\n", cyan("gen"))
	fmt.Println()
	fmt.Println("Common flags:")
	fmt.Println("  --surface-term=PATH   source to read; '-' reads standard input")
	fmt.Println("  --allow-errors        proceed past error-severity diagnostics")
	fmt.Println("  --dump-core           (elab/norm) also print the raw core term")
}

func runTermCommand(name string, cmd pipeline.Command, args []string) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	surfaceTerm := fs.String("surface-term", "", "path to the surface term source ('-' for stdin)")
	allowErrors := fs.Bool("allow-errors", false, "proceed past error-severity diagnostics")
	dumpCore := fs.Bool("dump-core", false, "also print the raw core term (debug)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *surfaceTerm == "" {
		fmt.Fprintf(os.Stderr, "%s: %s requires --surface-term=PATH\n", red("Error"), name)
		return 2
	}

	src, err := loader.Load(*surfaceTerm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		return 1
	}

	result, err := pipeline.Run(pipeline.Config{Command: cmd, AllowErrors: *allowErrors}, pipeline.Source{
		Filename: src.Filename,
		Text:     src.Text,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		return 1
	}

	printReports(result.Sink.Reports())
	if *dumpCore && result.Artifacts.TermCore != nil {
		fmt.Printf("%s\n%s\n", cyan("core:"), core.Dump(result.Artifacts.TermCore))
	}
	if result.Sink.HasErrors() && !*allowErrors {
		return 1
	}
	fmt.Println(result.Output)
	return 0
}

func runGenCommand(args []string) int {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	surfaceTerm := fs.String("surface-term", "", "path to the module source ('-' for stdin)")
	allowErrors := fs.Bool("allow-errors", false, "proceed to lowering/emission past error-severity diagnostics")
	configPath := fs.String("config", "", "path to a YAML emitter config (generator name/version, package, reserved prefix, runtime import)")
	out := fs.String("out", "", "output path for the generated Go source; stdout if omitted")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *surfaceTerm == "" {
		fmt.Fprintf(os.Stderr, "%s: gen requires --surface-term=PATH\n", red("Error"))
		return 2
	}

	cfg := emit.DefaultConfig()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			return 1
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "%s: invalid --config: %v\n", red("Error"), err)
			return 1
		}
	}

	src, err := loader.Load(*surfaceTerm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		return 1
	}

	result, err := pipeline.Run(pipeline.Config{
		Command:     pipeline.CommandGen,
		AllowErrors: *allowErrors,
		Emit:        cfg,
	}, pipeline.Source{Filename: src.Filename, Text: src.Text})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		return 1
	}

	printReports(result.Sink.Reports())
	if result.Sink.HasErrors() && !*allowErrors {
		return 1
	}

	if *out == "" {
		fmt.Print(result.Output)
		return 0
	}
	if err := os.WriteFile(*out, []byte(result.Output), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		return 1
	}
	fmt.Printf("%s wrote %s\n", cyan("→"), *out)
	return 0
}

func printReports(reports []*errors.Report) {
	for _, r := range reports {
		label := r.Severity
		switch r.Severity {
		case "error", "bug":
			label = red(r.Severity)
		case "warning":
			label = yellow(r.Severity)
		default:
			label = cyan(r.Severity)
		}
		if r.Range != nil {
			fmt.Fprintf(os.Stderr, "%s[%s] %s: %s\n", label, r.Code, r.Range.Start, r.Message)
		} else {
			fmt.Fprintf(os.Stderr, "%s[%s] %s\n", label, r.Code, r.Message)
		}
		for _, note := range r.Notes {
			fmt.Fprintf(os.Stderr, "  %s %s\n", cyan("note:"), note)
		}
	}
}
