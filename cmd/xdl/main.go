// Package main implements the xdl command: it runs XDL programs from a
// file, the command line or standard input, and hosts the interactive
// session.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/you-not-fish/xdl/internal/builtin"
	"github.com/you-not-fish/xdl/internal/config"
	"github.com/you-not-fish/xdl/internal/interp"
	"github.com/you-not-fish/xdl/internal/syntax"
)

// Command line flags
var (
	evalSrc    = flag.String("e", "", "Run source text instead of a file")
	emitTokens = flag.Bool("emit-tokens", false, "Output token stream")
	emitAST    = flag.Bool("emit-ast", false, "Output AST")
	astFormat  = flag.String("ast-format", "text", "AST output format (text or json)")
	trace      = flag.Bool("trace", false, "Output timing trace")
	configPath = flag.String("config", "", "Configuration file (default $HOME/"+config.FileName+")")
	version    = flag.Bool("version", false, "Print version")
)

// Version information
const Version = "0.1.0-dev"

// Exit codes
const (
	exitOK      = 0
	exitRuntime = 1
	exitSyntax  = 2
	exitSystem  = 3
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "XDL %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: xdl [options] [file.pro]\n\n")
		fmt.Fprintf(os.Stderr, "Without a file or -e, standard input is run, or an\n")
		fmt.Fprintf(os.Stderr, "interactive session starts when it is a terminal.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("xdl version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(exitOK)
	}

	os.Exit(run(flag.Args()))
}

// run drives one invocation and returns its exit code.
func run(args []string) int {
	cfg, err := config.Load(*configPath)
	if err != nil {
		newLogger(os.Stderr, isTerminal(os.Stderr)).system(err)
		return exitSystem
	}
	log := newLogger(os.Stderr, cfg.UseColor(isTerminal(os.Stderr)))

	if len(args) > 1 {
		log.system(fmt.Errorf("too many input files: %s", strings.Join(args, " ")))
		return exitSystem
	}

	filename, src, interactive, err := readInput(args)
	if err != nil {
		log.system(err)
		return exitSystem
	}

	if (*emitTokens || *emitAST) && interactive {
		log.system(errors.New("no input: give a file, -e or standard input"))
		return exitSystem
	}

	// Handle -emit-tokens
	if *emitTokens {
		return runEmitTokens(log, filename, src)
	}

	// Handle -emit-ast
	if *emitAST {
		return runEmitAST(log, filename, src)
	}

	s := newSession(cfg, log, *trace || cfg.Trace)
	for _, path := range cfg.Startup {
		if code := s.runFile(path); code != exitOK {
			return code
		}
	}
	if interactive {
		return s.repl()
	}
	return s.runSource(filename, src)
}

// readInput picks the source unit to run: -e text, the named file, or
// standard input. interactive is set when there is nothing to read and
// standard input is a terminal.
func readInput(args []string) (filename string, src []byte, interactive bool, err error) {
	switch {
	case *evalSrc != "":
		return "<command line>", []byte(*evalSrc), false, nil
	case len(args) == 1:
		src, err = os.ReadFile(args[0])
		return args[0], src, false, err
	case isTerminal(os.Stdin):
		return "", nil, true, nil
	}
	src, err = io.ReadAll(os.Stdin)
	if err != nil {
		return "", nil, false, fmt.Errorf("reading standard input: %w", err)
	}
	return "<stdin>", src, false, nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// session is one interpreter plus the output settings of the command.
type session struct {
	cfg   *config.Config
	log   *logger
	trace bool
	in    *interp.Interp
}

func newSession(cfg *config.Config, log *logger, trace bool) *session {
	return &session{
		cfg:   cfg,
		log:   log,
		trace: trace,
		in:    interp.New(builtin.New(os.Stdout)),
	}
}

func (s *session) runFile(path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		s.log.system(err)
		return exitSystem
	}
	return s.runSource(path, src)
}

// runSource lexes, parses and runs one unit in the session's Context.
func (s *session) runSource(filename string, src []byte) int {
	start := time.Now()
	items, err := syntax.Tokenize(filename, src)
	if err != nil {
		s.log.report(err)
		return exitSyntax
	}
	s.tracef("lex", start, "%d tokens", len(items))

	start = time.Now()
	f, err := syntax.NewParser(items).Parse()
	if err != nil {
		s.log.report(err)
		return exitSyntax
	}
	s.tracef("parse", start, "%d nodes", syntax.Count(f))

	start = time.Now()
	err = s.in.Run(f)
	s.tracef("run", start, "%d objects live", s.in.Context().LiveObjects())
	if err != nil {
		s.log.report(err)
		return exitRuntime
	}
	return exitOK
}

func (s *session) tracef(phase string, start time.Time, format string, args ...interface{}) {
	if s.trace {
		s.log.trace(phase, time.Since(start), fmt.Sprintf(format, args...))
	}
}

// runEmitTokens scans the unit and prints all tokens with positions.
func runEmitTokens(log *logger, filename string, src []byte) int {
	items, err := syntax.Tokenize(filename, src)

	// Print header
	fmt.Printf("%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Printf("%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))

	for _, it := range items {
		lit := formatLiteral(it.Lit)
		if it.Tok.IsLiteral() {
			lit = fmt.Sprintf("%s (%s)", lit, it.Kind)
		}
		fmt.Printf("%-20s %-12s %s\n", it.Pos, it.Tok, lit)
	}

	if err != nil {
		log.report(err)
		return exitSyntax
	}
	return exitOK
}

// runEmitAST parses the unit and outputs the AST.
func runEmitAST(log *logger, filename string, src []byte) int {
	f, err := syntax.Parse(filename, src)
	if err != nil {
		log.report(err)
		return exitSyntax
	}

	switch *astFormat {
	case "json":
		if err := syntax.FprintJSON(os.Stdout, f); err != nil {
			log.system(err)
			return exitSystem
		}
	case "text":
		syntax.Fprint(os.Stdout, f)
	default:
		log.system(fmt.Errorf("unknown AST format %q (want text or json)", *astFormat))
		return exitSystem
	}
	return exitOK
}

// formatLiteral escapes control characters for display.
func formatLiteral(lit string) string {
	r := strings.NewReplacer("\n", `\n`, "\t", `\t`, "\r", `\r`)
	return r.Replace(lit)
}
