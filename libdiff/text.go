package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Lines diffs two texts line by line.
func Lines(from, to string) []diffpatch.Diff {
	diffCfg := diffpatch.New()
	a, b, lines := diffCfg.DiffLinesToChars(from, to)
	diffs := diffCfg.DiffMain(a, b, false)
	return diffCfg.DiffCharsToLines(diffs, lines)
}

type TextColors struct {
	Insert func(string, ...any) string
	Delete func(string, ...any) string
}

// Text renders a line diff with "+ ", "- " and "  " prefixes. With
// context >= 0, runs of unchanged lines longer than 2*context are elided.
func Text(from, to string, context int, colors *TextColors) string {
	buf := &strings.Builder{}
	diffs := Lines(from, to)
	for i := range diffs {
		d := &diffs[i]
		lines := splitLines(d.Text)
		switch d.Type {
		case diffpatch.DiffInsert:
			for _, ln := range lines {
				writeLine(buf, "+ "+ln, colors, true)
			}
		case diffpatch.DiffDelete:
			for _, ln := range lines {
				writeLine(buf, "- "+ln, colors, false)
			}
		case diffpatch.DiffEqual:
			if context >= 0 && len(lines) > 2*context {
				head := lines[:context]
				tail := lines[len(lines)-context:]
				if i == 0 {
					head = nil
				}
				if i == len(diffs)-1 {
					tail = nil
				}
				for _, ln := range head {
					buf.WriteString("  " + ln + "\n")
				}
				buf.WriteString("  ...\n")
				for _, ln := range tail {
					buf.WriteString("  " + ln + "\n")
				}
				continue
			}
			for _, ln := range lines {
				buf.WriteString("  " + ln + "\n")
			}
		}
	}
	return buf.String()
}

func writeLine(buf *strings.Builder, ln string, colors *TextColors, insert bool) {
	if colors != nil {
		f := colors.Delete
		if insert {
			f = colors.Insert
		}
		if f != nil {
			ln = f("%s", ln)
		}
	}
	buf.WriteString(ln + "\n")
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}
