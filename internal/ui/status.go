package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

const (
	passMarkerLabelConstant = "ok"
	failMarkerLabelConstant = "FAIL"
	skipMarkerLabelConstant = "skip"
	warnMarkerLabelConstant = "warn"

	markerTemplateConstant          = "[%s]"
	statusLineTemplateConstant      = "%s %s"
	statusLineMessageSuffixTemplate = "%s %s: %s"
	passMarkerColorConstant         = "2"
	failMarkerColorConstant         = "1"
	skipMarkerColorConstant         = "3"
)

var (
	passMarkerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(passMarkerColorConstant))
	failMarkerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(failMarkerColorConstant))
	skipMarkerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(skipMarkerColorConstant))
)

// StatusPrinter renders one-line pass/fail/skip markers, colorized only when
// the destination is an interactive terminal.
type StatusPrinter struct {
	outputWriter io.Writer
	colorEnabled bool
}

// NewStatusPrinter constructs a printer for the provided writer.
func NewStatusPrinter(outputWriter io.Writer) *StatusPrinter {
	return &StatusPrinter{
		outputWriter: outputWriter,
		colorEnabled: writerIsTerminal(outputWriter),
	}
}

// PrintPass writes a passing check line.
func (printer *StatusPrinter) PrintPass(checkName string, message string) {
	printer.printLine(printer.renderMarker(passMarkerLabelConstant, passMarkerStyle), checkName, message)
}

// PrintFail writes a failing check line.
func (printer *StatusPrinter) PrintFail(checkName string, message string) {
	printer.printLine(printer.renderMarker(failMarkerLabelConstant, failMarkerStyle), checkName, message)
}

// PrintSkip writes a skipped check line.
func (printer *StatusPrinter) PrintSkip(checkName string, message string) {
	printer.printLine(printer.renderMarker(skipMarkerLabelConstant, skipMarkerStyle), checkName, message)
}

// PrintWarning writes a warning line outside the pass/fail/skip taxonomy.
func (printer *StatusPrinter) PrintWarning(message string) {
	fmt.Fprintln(printer.outputWriter, fmt.Sprintf(statusLineTemplateConstant, printer.renderMarker(warnMarkerLabelConstant, skipMarkerStyle), message))
}

// Println writes an unstyled line through the printer's writer.
func (printer *StatusPrinter) Println(line string) {
	fmt.Fprintln(printer.outputWriter, line)
}

func (printer *StatusPrinter) printLine(marker string, checkName string, message string) {
	trimmedMessage := strings.TrimSpace(message)
	if len(trimmedMessage) == 0 {
		fmt.Fprintln(printer.outputWriter, fmt.Sprintf(statusLineTemplateConstant, marker, checkName))
		return
	}
	fmt.Fprintln(printer.outputWriter, fmt.Sprintf(statusLineMessageSuffixTemplate, marker, checkName, trimmedMessage))
}

func (printer *StatusPrinter) renderMarker(markerLabel string, markerStyle lipgloss.Style) string {
	bracketedMarker := fmt.Sprintf(markerTemplateConstant, markerLabel)
	if !printer.colorEnabled {
		return bracketedMarker
	}
	return markerStyle.Render(bracketedMarker)
}

func writerIsTerminal(outputWriter io.Writer) bool {
	fileWriter, isFile := outputWriter.(*os.File)
	if !isFile {
		return false
	}
	return isatty.IsTerminal(fileWriter.Fd()) || isatty.IsCygwinTerminal(fileWriter.Fd())
}
