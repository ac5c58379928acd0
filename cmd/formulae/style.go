package main

import (
	"strings"

	"charm.land/lipgloss/v2"
)

var (
	variantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).Bold(true)
	fieldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#87af87"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
)

// highlight colors the output of ast.Dump line by line: the name of a
// variant before '(' and the name of a field before '='.
func highlight(str string) string {
	lines := strings.Split(str, "\n")
	for i, line := range lines {
		lines[i] = highlightLine(line)
	}
	return strings.Join(lines, "\n")
}

func highlightLine(line string) string {
	var (
		body   = strings.TrimLeft(line, " \t")
		indent = line[:len(line)-len(body)]
	)
	if ix := strings.IndexAny(body, "=("); ix > 0 && isWord(body[:ix]) {
		style := variantStyle
		if body[ix] == '=' {
			style = fieldStyle
		}
		return indent + style.Render(body[:ix]) + highlightLine(body[ix:])
	}
	if strings.HasPrefix(body, "=") || strings.HasPrefix(body, "(") {
		return indent + body[:1] + highlightLine(body[1:])
	}
	return line
}

func isWord(str string) bool {
	for _, c := range str {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return str != ""
}
