package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/signadot/objmap/gomap"
	"github.com/signadot/objmap/libdiff"
)

// fieldErrors are the field errors of one decoded or encoded value, with
// prefix locating the value within its document.
type fieldErrors struct {
	prefix string
	errs   []*gomap.FieldError
}

// reportErrors writes one line per field error and returns their number.
func reportErrors(cfg *MainConfig, w io.Writer, file string, groups []fieldErrors) int {
	loc := cfg.painter(w, color.Faint)
	msg := cfg.painter(w, color.FgRed)
	n := 0
	for _, g := range groups {
		gomap.Walk(g.errs, func(path string, e *gomap.FieldError) {
			n++
			if g.prefix != "" {
				path = g.prefix + "." + path
			}
			text := strings.TrimPrefix(e.Error(), e.Path()+": ")
			fmt.Fprintf(w, "%s %s %s\n", loc.Sprint(file+":"), path, msg.Sprintf("%s: %s", e.Kind, text))
		})
	}
	return n
}

func reportChanges(cfg *MainConfig, w io.Writer, changes []libdiff.Change) {
	paint := map[libdiff.Op]*color.Color{
		libdiff.Insert:  cfg.painter(w, color.FgGreen),
		libdiff.Delete:  cfg.painter(w, color.FgRed),
		libdiff.Replace: cfg.painter(w, color.FgYellow),
	}
	for _, c := range changes {
		paint[c.Op].Fprintln(w, c.String())
	}
}
