// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Program jstream checks JSON and JSON5 documents for syntax errors, and
// can print the token stream the tokenizer reports for a document.
//
// Usage:
//
//	jstream [flags] [file ...]
//
// With no files, jstream reads standard input.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/ast"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/panjf2000/ants/v2"
)

var (
	doJSON5    = flag.Bool("json5", false, "accept the JSON5 grammar")
	doComments = flag.Bool("comments", false, "accept line and block comments")
	doEmpty    = flag.Bool("empty", false, "accept documents containing no value")
	doTokens   = flag.Bool("tokens", false, "print the token stream of each input")
	colorMode  = flag.String("color", "auto", "colorize output: auto, always, never")
	numWorkers = flag.Int("j", runtime.NumCPU(), "number of inputs to check concurrently")
	verbose    = flag.Bool("v", false, "enable verbose logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage: %[1]s [flags] [file ...]

Check each named file (or standard input) for JSON syntax errors.
With -tokens, print the token stream of each input instead.

Flags:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var pal *palette
	switch *colorMode {
	case "always":
		pal = &defaultPalette
	case "never":
	case "auto":
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			pal = &defaultPalette
		}
	default:
		slog.Error("Invalid -color value", "value", *colorMode)
		os.Exit(2)
	}
	var stdout io.Writer = os.Stdout
	if pal != nil {
		stdout = colorable.NewColorableStdout()
	}

	cfg := config()
	inputs := flag.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	if *doTokens {
		w := bufio.NewWriter(stdout)
		defer w.Flush()
		for _, path := range inputs {
			if err := printTokens(w, pal, path, cfg); err != nil {
				w.Flush()
				slog.Error("Tokenizing failed", "input", path, "error", err)
				os.Exit(1)
			}
		}
		return
	}

	results, err := checkAll(inputs, cfg, *numWorkers)
	if err != nil {
		slog.Error("Checking failed", "error", err)
		os.Exit(2)
	}
	nbad := 0
	for i, err := range results {
		if err != nil {
			nbad++
			fmt.Fprintf(stdout, "%s: %s\n", inputs[i], pal.bad(err.Error()))
		} else if *verbose {
			fmt.Fprintf(stdout, "%s: %s\n", inputs[i], pal.good("ok"))
		}
	}
	slog.Debug("Done", "inputs", len(inputs), "failed", nbad)
	if nbad != 0 {
		os.Exit(1)
	}
}

// config returns the tokenizer configuration selected by the flags.
func config() jstream.Config {
	var cfg jstream.Config
	if *doComments {
		cfg = jstream.Comments
	}
	if *doJSON5 {
		cfg = jstream.JSON5
	}
	cfg.EmptyDocument = *doEmpty
	return cfg
}

// checkAll parses each of the inputs with a pool of n workers, and returns a
// slice of errors parallel to inputs. A nil entry means the input is valid.
func checkAll(inputs []string, cfg jstream.Config, n int) ([]error, error) {
	pool, err := ants.NewPool(max(n, 1))
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	errs := make([]error, len(inputs))
	var wg sync.WaitGroup
	for i, path := range inputs {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			errs[i] = checkOne(path, cfg)
		}); err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()
	return errs, nil
}

func checkOne(path string, cfg jstream.Config) error {
	r, err := openInput(path)
	if err != nil {
		return err
	}
	defer r.Close()
	v, err := ast.ParseReader(r, cfg)
	if err != nil {
		return err
	}
	slog.Debug("Parsed input", "input", path, "type", fmt.Sprintf("%T", v))
	return nil
}

func printTokens(w io.Writer, pal *palette, path string, cfg jstream.Config) error {
	r, err := openInput(path)
	if err != nil {
		return err
	}
	defer r.Close()

	tz := jstream.NewTokenizer(cfg)
	lc := tz.LineCol()
	emit := func(tok jstream.Token) error {
		ch := "EOF"
		if tok.Char != jstream.EOF {
			ch = fmt.Sprintf("%q", tok.Char)
		}
		_, err := fmt.Fprintf(w, "%-8s %-8s %s %-20s %s\n", lc, tok.Loc,
			pal.wrap(pal.forType(tok.Type), fmt.Sprintf("%-10s", tok.Type)), tok.Sub, ch)
		lc = tz.LineCol()
		return err
	}
	if err := tz.FeedReader(r, emit); err != nil {
		return err
	}
	tok, err := tz.End()
	if err != nil {
		return err
	}
	return emit(tok)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
