package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	stegano "github.com/yyyoichi/stegano_zero"
	"golang.org/x/term"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	okStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))
)

// styled is false when output is piped, so scripts get plain text.
var styled = term.IsTerminal(int(os.Stdout.Fd()))

func render(s lipgloss.Style, v string) string {
	if !styled {
		return v
	}
	return s.Render(v)
}

func field(label string, value any) {
	fmt.Printf("  %s %s\n", render(labelStyle, fmt.Sprintf("%-9s", label+":")), render(valueStyle, fmt.Sprint(value)))
}

func printReport(out string, r *stegano.Report) {
	fmt.Println(render(okStyle, "embedded") + " " + out)
	field("medium", r.Medium)
	field("method", r.Method)
	field("format", r.Format)
	field("message", fmt.Sprintf("%d / %d bytes", r.MessageBytes, r.Capacity))
	field("bits", fmt.Sprintf("%d in %d units", r.FramedBits, r.CarrierUnits))
	field("changed", r.ChangedUnits)
	if r.Medium != stegano.MediumText {
		field("psnr", fmt.Sprintf("%.2f dB", r.PSNR))
	}
}

func printMessage(r *stegano.Result) {
	if !styled {
		os.Stdout.Write(r.Message)
		return
	}
	fmt.Println(render(okStyle, "decoded") + " " + render(labelStyle, fmt.Sprintf("(%s, %s)", r.Medium, r.Method)))
	fmt.Println(string(r.Message))
}

func printSaved(path string, r *stegano.Result) {
	fmt.Println(render(okStyle, "decoded") + " " + path)
	field("medium", r.Medium)
	field("method", r.Method)
	field("bytes", len(r.Message))
}

func printCapacity(in string, n int) {
	if !styled {
		fmt.Println(n)
		return
	}
	fmt.Println(render(okStyle, "capacity") + " " + in)
	field("bytes", n)
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, render(errorStyle, "error:")+" "+err.Error())
}
