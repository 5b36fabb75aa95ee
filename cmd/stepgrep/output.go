package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// useColor reports whether output written to w should be colored.
func (a *app) useColor(w io.Writer) bool {
	return !a.v.GetBool("no-color") && isTerminal(w)
}

func newColor(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func errorColor(a *app) *color.Color {
	return newColor(a.useColor(a.stderr), color.FgRed)
}

// printer writes matching lines in grep's name:line:text layout.
type printer struct {
	w        io.Writer
	fileName *color.Color
	lineNo   *color.Color
	sep      *color.Color
	names    bool // prefix lines with the file name
	numbers  bool // prefix lines with the line number
}

func newPrinter(w io.Writer, colored, names, numbers bool) *printer {
	return &printer{
		w:        w,
		fileName: newColor(colored, color.FgMagenta),
		lineNo:   newColor(colored, color.FgGreen),
		sep:      newColor(colored, color.FgCyan),
		names:    names,
		numbers:  numbers,
	}
}

func (p *printer) line(name string, n int, text string) {
	if p.names {
		fmt.Fprint(p.w, p.fileName.Sprint(name), p.sep.Sprint(":"))
	}
	if p.numbers {
		fmt.Fprint(p.w, p.lineNo.Sprint(strconv.Itoa(n)), p.sep.Sprint(":"))
	}
	fmt.Fprintln(p.w, text)
}

func (p *printer) count(name string, n int) {
	if p.names {
		fmt.Fprint(p.w, p.fileName.Sprint(name), p.sep.Sprint(":"))
	}
	fmt.Fprintln(p.w, n)
}

// logger builds the stderr logger from --log-level.
func (a *app) logger() (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q", a.v.GetString("log-level"))
	}
	out := zerolog.ConsoleWriter{
		Out:     a.stderr,
		NoColor: !a.useColor(a.stderr),
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
