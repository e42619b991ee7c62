package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: typefold <command> [options]\n")
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  resolve <expr>  Resolve a type expression to its concrete types\n")
		fmt.Fprintf(os.Stderr, "  repl            Start an interactive session\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "resolve":
		os.Exit(runResolve(args))
	case "repl":
		os.Exit(runRepl(args))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runResolve(args []string) int {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	defsPath := fs.String("defs", "", "file of class/type declarations to load first")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: typefold resolve [-defs file] <expr>\n")
		return 1
	}

	sess := newSession()

	if *defsPath != "" {
		f, err := os.Open(*defsPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return 1
		}
		defer f.Close()

		if err := sess.loadDefs(f); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", *defsPath, err.Error())
			return 1
		}
	}

	expr := strings.Join(fs.Args(), " ")
	names, err := sess.resolveExpr(expr)
	if err != nil {
		printError(err)
		return 1
	}

	fmt.Printf("{%s}\n", strings.Join(names, ", "))
	return 0
}
