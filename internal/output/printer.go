// Package output formats CLI results for the terminal.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"veritext/internal/detect"
)

// Printer writes formatted messages, optionally colored.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

func NewPrinter(useColors bool) *Printer {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		useColors = false
	}
	return &Printer{out: os.Stdout, err: os.Stderr, useColors: useColors}
}

func (p *Printer) Info(format string, args ...any) {
	if p.useColors {
		color.New(color.FgCyan).Fprintf(p.out, format+"\n", args...)
	} else {
		fmt.Fprintf(p.out, format+"\n", args...)
	}
}

func (p *Printer) Success(format string, args ...any) {
	if p.useColors {
		color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.out, "[OK] "+format+"\n", args...)
	}
}

func (p *Printer) Warning(format string, args ...any) {
	if p.useColors {
		color.New(color.FgYellow).Fprintf(p.err, "! "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.err, "[WARN] "+format+"\n", args...)
	}
}

func (p *Printer) Error(format string, args ...any) {
	if p.useColors {
		color.New(color.FgRed, color.Bold).Fprintf(p.err, "Error: "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.err, "[ERROR] "+format+"\n", args...)
	}
}

func (p *Printer) Header(text string) {
	if p.useColors {
		color.New(color.Bold).Fprintln(p.out, text)
	} else {
		fmt.Fprintln(p.out, text)
	}
}

// RiskBadge renders a risk level with a color matching its severity.
func (p *Printer) RiskBadge(level detect.RiskLevel) string {
	if !p.useColors {
		return string(level)
	}
	switch level {
	case detect.RiskHuman:
		return color.New(color.FgGreen, color.Bold).Sprint(string(level))
	case detect.RiskLikelyHuman:
		return color.New(color.FgGreen).Sprint(string(level))
	case detect.RiskUncertain:
		return color.New(color.FgYellow).Sprint(string(level))
	case detect.RiskLikelyAI:
		return color.New(color.FgRed).Sprint(string(level))
	default:
		return color.New(color.FgRed, color.Bold).Sprint(string(level))
	}
}
