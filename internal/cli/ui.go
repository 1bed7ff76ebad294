package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/hypercuboid/pkg/core/geom"
	hio "github.com/matzehuels/hypercuboid/pkg/io"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for table headers.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleInside  = lipgloss.NewStyle().Foreground(colorGreen)
	styleOutside = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printStats prints integration statistics on a single line.
func printStats(boxes, cells int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d boxes", boxes),
		fmt.Sprintf("%d cells", cells),
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line + StyleDim.Render(" · ") + statusStyle.Render(status))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// =============================================================================
// Tables
// =============================================================================

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return s.Inherit(StyleTitle)
			case col == 0:
				return s.Inherit(StyleDim)
			}
			return s
		})
}

// writeSegmentsTable renders the segments of sol, one row per cell, with a
// column per cross-section axis named after its original axis.
func writeSegmentsTable(w io.Writer, sol hio.Solution) error {
	headers := []string{"#"}
	for _, a := range sol.Axes {
		headers = append(headers, "x"+strconv.Itoa(a))
	}
	headers = append(headers, "integral")

	t := newTable(headers...)
	for i, s := range sol.Segments {
		row := []string{strconv.Itoa(i)}
		for d := range sol.Axes {
			row = append(row, s.Patch.Axis(d).String())
		}
		row = append(row, formatFloat(s.Integral))
		t.Row(row...)
	}

	_, err := fmt.Fprintf(w, "%s\n%s %s %s\n",
		t.Render(),
		StyleDim.Render("total"),
		StyleNumber.Render(formatFloat(sol.Total)),
		StyleDim.Render(fmt.Sprintf("(axis %d, %s)", sol.Axis, sol.Mode)))
	return err
}

// writePiecesTable renders split pieces with their containment flag.
func writePiecesTable(w io.Writer, pieces []geom.Box, inside []bool) error {
	t := newTable("#", "piece", "inside b")
	for i, p := range pieces {
		flag := styleOutside.Render("no")
		if inside[i] {
			flag = styleInside.Render("yes")
		}
		t.Row(strconv.Itoa(i), formatBox(p), flag)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func formatBox(b geom.Box) string {
	parts := make([]string, b.Dim())
	for d := range parts {
		parts[d] = b.Axis(d).String()
	}
	return strings.Join(parts, " × ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
