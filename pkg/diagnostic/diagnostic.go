// Package diagnostic renders validation errors as compiler style reports:
// a location header, the offending source line and an underline.
package diagnostic

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TabWidth is the number of columns a tab is expanded to.
const TabWidth = 4

var (
	gutterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	caretStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// Diagnostic is one report. Column and Length count runes, the way
// document locations do.
type Diagnostic struct {
	File    string
	Line    int
	Column  int
	Length  int
	Message string
	Help    []string
}

// Render renders d against the full source text. Without a usable line the
// message is printed on its own.
func Render(d Diagnostic, source string) string {
	if d.Line < 1 {
		return "  " + d.Message
	}
	var b strings.Builder
	b.WriteString(RenderLocation(d.File, d.Line, d.Column))
	lines := strings.Split(source, "\n")
	if d.Line <= len(lines) {
		b.WriteByte('\n')
		b.WriteString(RenderSnippet(strings.TrimSuffix(lines[d.Line-1], "\r"), d.Line, d.Column, d.Length, d.Message))
	} else {
		b.WriteString("\n  " + d.Message)
	}
	for _, help := range d.Help {
		b.WriteString("\n  = " + helpStyle.Render("help:") + " " + help)
	}
	return b.String()
}

// RenderSnippet renders a source line with its number and an underline
// below the span starting at column:
//
//	3 | query { user }
//	  |         ^^^^ error message here
//
// Wide characters and tabs before and inside the span are accounted for so
// the carets sit under the right cells.
func RenderSnippet(source string, lineNum int, column int, length int, message string) string {
	if length < 1 {
		length = 1
	}
	if column < 1 {
		column = 1
	}

	numStr := strconv.Itoa(lineNum)
	pipe := gutterStyle.Render("|")
	codeLine := gutterStyle.Render(numStr) + " " + pipe + " " + expandTabs(source)

	runes := []rune(source)
	start := min(column-1, len(runes))
	end := min(start+length, len(runes))
	padding := cells(runes[:start])
	width := max(cells(runes[start:end]), 1)

	underLine := strings.Repeat(" ", len(numStr)) + " " + pipe + " " +
		strings.Repeat(" ", padding) + caretStyle.Render(strings.Repeat("^", width))
	if message != "" {
		underLine += " " + messageStyle.Render(message)
	}
	return codeLine + "\n" + underLine
}

// RenderLocation renders a location header like "--> file.graphql:3:9".
func RenderLocation(filename string, line int, column int) string {
	return gutterStyle.Render("-->") + " " + filename + ":" + strconv.Itoa(line) + ":" + strconv.Itoa(column)
}

func cells(runes []rune) int {
	n := 0
	for _, r := range runes {
		if r == '\t' {
			n += TabWidth
			continue
		}
		n += runewidth.RuneWidth(r)
	}
	return n
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", TabWidth))
}
