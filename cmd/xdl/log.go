package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/you-not-fish/xdl/internal/interp"
	"github.com/you-not-fish/xdl/internal/syntax"
)

const (
	ansiReset    = "\x1b[0;0m"
	ansiBlue     = "\x1b[34;22m"
	ansiYellow   = "\x1b[33;22m"
	ansiRed      = "\x1b[31;22m"
	ansiBlueBold = "\x1b[34;1m"
	ansiRedBold  = "\x1b[31;1m"
)

// logger writes diagnostics to the error stream. Every line starts with
// "% ", the way IDL reports errors.
type logger struct {
	w     io.Writer
	color bool
}

func newLogger(w io.Writer, color bool) *logger {
	return &logger{w: w, color: color}
}

func (l *logger) paint(head, headStyle, body, bodyStyle string) string {
	if !l.color {
		return head + body
	}
	return headStyle + head + bodyStyle + body + ansiReset
}

// report prints err as "% <Kind>: <message> at <file>:<line>:<col>".
func (l *logger) report(err error) {
	kind, msg, pos := describe(err)
	if pos.IsValid() {
		msg += " at " + pos.String()
	}
	fmt.Fprintln(l.w, l.paint("% "+kind+": ", ansiRedBold, msg, ansiRed))
}

// system prints a failure of the command itself, such as an unreadable
// file.
func (l *logger) system(err error) {
	fmt.Fprintln(l.w, l.paint("% System: ", ansiRedBold, err.Error(), ansiRed))
}

// notice prints an informational line, used by the interactive session.
func (l *logger) notice(msg string) {
	fmt.Fprintln(l.w, l.paint("% ", ansiYellow, msg, ansiYellow))
}

func (l *logger) trace(phase string, d time.Duration, detail string) {
	fmt.Fprintln(l.w, l.paint(fmt.Sprintf("%% trace %-6s", phase), ansiBlueBold,
		fmt.Sprintf("%12s  %s", d, detail), ansiBlue))
}

// describe splits an error from the core into its kind, message and
// position.
func describe(err error) (kind, msg string, pos syntax.Pos) {
	var lexErr *syntax.LexError
	var parseErr *syntax.ParseError
	var rtErr *interp.Error
	switch {
	case errors.As(err, &lexErr):
		return "LexError", lexErr.Msg, lexErr.Pos
	case errors.As(err, &parseErr):
		return "ParseError", parseErr.Msg, parseErr.Pos
	case errors.As(err, &rtErr):
		return rtErr.Kind.String(), rtErr.Msg, rtErr.Pos
	}
	return interp.KindOf(err).String(), err.Error(), syntax.Pos{}
}
