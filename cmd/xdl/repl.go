package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/you-not-fish/xdl/internal/builtin"
	"github.com/you-not-fish/xdl/internal/interp"
	"github.com/you-not-fish/xdl/internal/syntax"
)

const banner = "XDL " + Version + ". Type EXIT or press Ctrl-D to leave, .RESET to clear all state."

// repl reads units from the terminal until EOF or EXIT. Each unit runs in
// the same Context; an error is reported and the session goes on.
func (s *session) repl() int {
	fmt.Println(banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if hist := s.cfg.HistoryFile; hist != "" {
		if f, err := os.Open(hist); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(hist); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for n := 1; ; n++ {
		src, ok := readUnit(ln, s.cfg.Prompt, s.cfg.ContinuationPrompt)
		if !ok {
			fmt.Println()
			return exitOK
		}
		for _, line := range strings.Split(src, "\n") {
			if strings.TrimSpace(line) != "" {
				ln.AppendHistory(line)
			}
		}

		switch command(src) {
		case "":
			continue
		case "EXIT":
			return exitOK
		case ".RESET", ".RESET_SESSION":
			s.in = interp.New(builtin.New(os.Stdout))
			s.log.notice("session reset")
			continue
		}
		s.runSource(fmt.Sprintf("<input %d>", n), []byte(src))
	}
}

// command returns the upper-cased text of src when it is a single word,
// which may be a session command.
func command(src string) string {
	w := strings.TrimSpace(src)
	if strings.ContainsAny(w, " \t\n,&") {
		return "?"
	}
	return strings.ToUpper(w)
}

// readUnit reads lines until they form a unit that either parses or fails
// for a reason more input cannot fix. ok is false at end of input.
func readUnit(ln *liner.State, prompt, cont string) (src string, ok bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !needsMore(b.String()) {
			return b.String(), true
		}
	}
}

// needsMore reports whether src stops in the middle of a construct.
func needsMore(src string) bool {
	_, err := syntax.Parse("", []byte(src))
	return syntax.IsIncomplete(err)
}
