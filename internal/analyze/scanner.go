package analyze

import (
	"bufio"
	"regexp"
	"strings"
)

// keyLine matches "<indent><key>:" followed by whitespace or end of line.
// Keys may be bare or quoted; list items ("- key:") never match.
var keyLine = regexp.MustCompile(`^([ \t]*)("(?:[^"\\]|\\.)*"|'[^']*'|[A-Za-z0-9_$][A-Za-z0-9_$.\-]*)[ \t]*:(?:[ \t]|$)`)

const unlocked = -1

// Analyze scans text and returns its structural index. It never fails;
// input it cannot read yields a sparse or empty index.
func Analyze(text string) *Index {
	ix := NewIndex()

	var (
		current string
		width   = unlocked
	)

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+1)

	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")

		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		indent := len(line) - len(trimmed)
		m := keyLine.FindStringSubmatch(line)

		if indent == 0 {
			current, width = "", unlocked

			if m != nil {
				current = unquote(m[2])
				ix.addKey(current)
			}

			continue
		}

		if current == "" {
			continue
		}

		// The first indented line locks the width, key or not.
		if width == unlocked {
			width = indent
		}

		switch {
		case indent < width:
			current, width = "", unlocked
		case m != nil && indent == width:
			ix.addChild(current, unquote(m[2]))
		}
	}

	return ix
}

func unquote(key string) string {
	if len(key) >= 2 {
		if (key[0] == '"' && key[len(key)-1] == '"') || (key[0] == '\'' && key[len(key)-1] == '\'') {
			return key[1 : len(key)-1]
		}
	}

	return key
}
