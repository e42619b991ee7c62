package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kr/pretty"
	"github.com/peterh/liner"
)

const (
	banner      = "typefold - type expression resolver (:help for commands)"
	historyFile = ".typefold_history"
	prompt      = ">> "
)

func runRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	sess := newSession()

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return 1
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(line, ":") {
			if quit := replCommand(sess, line); quit {
				return 0
			}
			continue
		}

		if strings.HasPrefix(line, "class ") || strings.HasPrefix(line, "type ") {
			if err := sess.declare(line); err != nil {
				fmt.Fprintln(os.Stderr, err.Error())
			}
			continue
		}

		names, err := sess.resolveExpr(line)
		if err != nil {
			printError(err)
			continue
		}
		fmt.Printf("{%s}\n", strings.Join(names, ", "))
	}
}

// replCommand handles ':' commands; it returns true on :quit.
func replCommand(sess *session, line string) bool {
	cmd, rest, _ := strings.Cut(line, " ")

	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Println("  class Name(f1, f2)      declare a leaf type")
		fmt.Println("  type Name[T] = expr     declare an alias")
		fmt.Println("  <expr>                  resolve an expression")
		fmt.Println("  :show Name              dump a declared name")
		fmt.Println("  :quit                   exit")
	case ":show":
		name := strings.TrimSpace(rest)
		if name == "" {
			fmt.Println("usage: :show Name")
			return false
		}
		expr := sess.scope.Lookup(name)
		if expr == nil {
			fmt.Printf("unknown name %q\n", name)
			return false
		}
		fmt.Printf("%# v\n", pretty.Formatter(expr))
	default:
		fmt.Println("unknown command. Type :help for commands, :quit to exit.")
	}
	return false
}
