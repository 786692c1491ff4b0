package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"
)

// recoverFrame turns a panic inside a frame into an error. The stack goes to
// the log line by line and the panic value is shown on the dot screen.
func (a *app) recoverFrame(err *error) {
	v := recover()
	if v == nil {
		return
	}

	a.logf("dotlcd panic: %v", v)
	for _, line := range strings.Split(string(debug.Stack()), "\n") {
		if line == "" {
			continue
		}
		a.logf("%s", line)
	}

	a.r.panicScreen(v)
	*err = fmt.Errorf("app: panic: %v", v)
}

// panicScreen replaces the window with the panic value wrapped to the grid
// width and pushes it. Errors are ignored: there is nobody left to tell.
func (r *renderer) panicScreen(v any) {
	geom := r.scr.Geometry()
	_, glyph := tinyfont.LineWidth(r.font, "0")
	if glyph == 0 || r.top <= 0 {
		return
	}
	cols := geom.Width / int(glyph)
	rows := geom.Height / r.top

	lines := []string{"PANIC"}
	msg := fmt.Sprint(v)
	for len(msg) > 0 && len(lines) < rows {
		chunk, rest := takeRunes(msg, cols)
		lines = append(lines, chunk)
		msg = strings.TrimLeft(rest, " ")
	}

	r.scr.Clear()
	d := r.scr.Displayer()
	ink := color.RGBA{A: 0xFF}
	for i, line := range lines {
		tinyfont.WriteLine(d, r.font, 0, int16((i+1)*r.top-1), line, ink)
	}
	_ = d.Display()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
