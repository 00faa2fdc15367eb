// toylang REPL and file runner.
//
// With no arguments, starts an interactive loop: each line is fed through the
// full pipeline (lex → parse → resolve → type-check → evaluate) and the final
// locals are printed. With a file argument, runs the file once. The pipeline
// core stays silent; all rendering happens here.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	toylang "github.com/paavohuhtala/toylang"
)

const (
	historyFile = ".toylang_history"
	promptMain  = "==> "
)

var (
	errColor    = color.New(color.FgRed)
	valueColor  = color.New(color.FgBlue)
	headerColor = color.New(color.FgGreen)
)

func main() {
	showAST := flag.Bool("ast", false, "dump the AST before evaluating")
	showRAST := flag.Bool("rast", false, "dump the resolved AST before evaluating")
	flag.Parse()

	if flag.NArg() > 0 {
		os.Exit(runFile(flag.Arg(0), *showAST, *showRAST))
	}
	repl(*showAST, *showRAST)
}

func runFile(path string, showAST, showRAST bool) int {
	src, err := os.ReadFile(path)
	if err != nil {
		errColor.Fprintln(os.Stderr, err)
		return 1
	}
	if !runSource(filepath.Base(path), string(src), showAST, showRAST) {
		return 1
	}
	return 0
}

func repl(showAST, showRAST bool) {
	fmt.Printf("toylang %s REPL\nCtrl+D exits. Type :quit to exit, :help for commands.\n", toylang.Version)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		input, err := line.Prompt(promptMain)
		if err == io.EOF || err == liner.ErrPromptAborted {
			fmt.Println()
			return
		}
		if err != nil {
			errColor.Fprintln(os.Stderr, err)
			return
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch input {
		case ":quit":
			return
		case ":help":
			fmt.Println("REPL commands:\n  :quit    Exit the REPL\n  :ast     Toggle AST dumps\n  :rast    Toggle RAST dumps")
			continue
		case ":ast":
			showAST = !showAST
			fmt.Printf("ast dumps: %v\n", showAST)
			continue
		case ":rast":
			showRAST = !showRAST
			fmt.Printf("rast dumps: %v\n", showRAST)
			continue
		}

		runSource("", input, showAST, showRAST)
	}
}

// runSource evaluates one source unit and renders the outcome. Returns false
// when the pipeline reported an error.
func runSource(name, src string, showAST, showRAST bool) bool {
	if showAST {
		if program, err := toylang.Parse(src); err == nil {
			headerColor.Println("ast:")
			fmt.Println(toylang.DumpProgram(program))
		}
	}
	if showRAST {
		if program, err := toylang.Parse(src); err == nil {
			if _, rast, err := toylang.Resolve(program); err == nil {
				headerColor.Println("rast:")
				fmt.Println(toylang.DumpRastProgram(rast))
			}
		}
	}

	ip, err := toylang.Eval(src)
	if err != nil {
		errColor.Fprintln(os.Stderr, toylang.WrapErrorWithName(err, name, src))
		return false
	}

	printLocals(ip)
	return true
}

// printLocals renders the final environment, one local per line in
// declaration order. Shadowed and block-scoped locals show up too; that
// mirrors how the resolution context actually looks.
func printLocals(ip *toylang.Interpreter) {
	locals := ip.Context().Locals()
	sort.SliceStable(locals, func(i, j int) bool { return locals[i].Id < locals[j].Id })
	for _, l := range locals {
		v, ok := ip.Locals[l.Id]
		if !ok {
			continue
		}
		typeName := "?"
		if l.Type != nil {
			typeName = l.Type.String()
		}
		valueColor.Printf("%s : %s = %s\n", l.Name, typeName, v)
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}
