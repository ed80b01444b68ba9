package views

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// darkest and lightest grays used when dimming the background
const (
	dimLight = 250
	dimDark  = 238
)

// DimColor maps an overlay opacity to a grayscale foreground: 0 leaves the
// text light, 1 pushes it to the darkest gray.
func DimColor(alpha float64) lipgloss.Color {
	alpha = math.Max(0, math.Min(1, alpha))
	level := dimLight - int(math.Round(alpha*float64(dimLight-dimDark)))
	return lipgloss.Color(fmt.Sprint(level))
}

// DimLines strips colors from lines and recolors them gray by alpha. An
// alpha of 0 returns the lines untouched.
func DimLines(lines []string, alpha float64) []string {
	if alpha <= 0 {
		return lines
	}
	style := lipgloss.NewStyle().Foreground(DimColor(alpha))
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = style.Render(ansiRE.ReplaceAllString(line, ""))
	}
	return out
}

// Splice replaces base rows from top onward with overlay rows. Rows outside
// base are dropped.
func Splice(base, overlay []string, top int) []string {
	out := append([]string(nil), base...)
	for i, line := range overlay {
		row := top + i
		if row < 0 || row >= len(out) {
			continue
		}
		out[row] = line
	}
	return out
}

// RenderPopup centers popup over a dotted backdrop filling the screen
func RenderPopup(popup string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup,
		lipgloss.WithWhitespaceChars("·"),
		lipgloss.WithWhitespaceForeground(DimColor(1)),
	)
}

// Plain strips ANSI styling
func Plain(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// PadLines returns exactly n lines, truncating or padding with empty lines
func PadLines(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	copy(out, lines)
	return out
}

// Fill repeats text until it covers width cells on each of rows lines
func Fill(text string, width, rows int) []string {
	if text == "" || width <= 0 || rows <= 0 {
		return PadLines(nil, rows)
	}
	word := []rune(text + " ")
	repeated := []rune(strings.Repeat(string(word), width/len(word)+2))
	lines := make([]string, rows)
	for i := range lines {
		shift := (i * 3) % len(word)
		lines[i] = string(repeated[shift : shift+width])
	}
	return lines
}
