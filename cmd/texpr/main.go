package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/peterh/liner"

	"github.com/punchadam/texpr"
)

const historyFile = ".texpr_history"

func main() {
	log.SetFlags(0)
	var (
		inname, verb string
		with         [][2]string
		echo         bool
		prec         int
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file of expressions, one per line")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.IntVar(&prec, "p", 64, "precision of calculations in bits")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.Parse()
	if prec <= 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}

	ctx := texpr.NewContext(uint(prec))
	for _, d := range with {
		r, err := texpr.EvalString(d[1], uint(prec))
		if err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
		ctx.Set(d[0], r)
	}

	switch {
	case inname != "":
		f, err := os.Open(inname)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				run(ctx, line, verb, echo)
			}
		}
		if err := sc.Err(); err != nil {
			log.Fatal(err)
		}
	case flag.NArg() > 0:
		for _, arg := range flag.Args() {
			run(ctx, arg, verb, echo)
		}
	default:
		repl(ctx, verb, echo)
	}
}

// run parses, optionally echoes, and evaluates one expression.
func run(ctx *texpr.Context, src, verb string, echo bool) {
	t, err := texpr.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if echo {
		fmt.Printf("%v : ", t)
	}
	r, err := ctx.Eval(t)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Printf(verb+"%s\n", r, approx(r))
}

// approx renders a best rational approximation of the result, when one
// close enough exists and adds information beyond the decimal form.
func approx(r *big.Float) string {
	f, _ := r.Float64()
	num, den, ok := texpr.Rationalize(f, 1000, 1e-9)
	if !ok || den == 1 {
		return ""
	}
	return " ≈ " + strconv.FormatInt(num, 10) + "/" + strconv.FormatInt(den, 10)
}

func repl(ctx *texpr.Context, verb string, echo bool) {
	fmt.Println("texpr: LaTeX math expressions. Ctrl+D exits.")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt("==> ")
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			log.Fatal(err)
		}
		src := strings.TrimSpace(line)
		if src == "" {
			continue
		}
		ln.AppendHistory(src)

		t, err := texpr.Parse(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if echo {
			repr.Println(t)
		}
		r, err := ctx.Eval(t)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Printf(verb+"%s\n", r, approx(r))
	}
}
