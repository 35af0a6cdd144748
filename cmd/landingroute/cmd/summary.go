package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mfulz/landingroute/internal/batch"
)

func renderSummary(w io.Writer, sum *batch.Summary) error {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("SUMMARY"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total rows processed: %d\n", sum.Total)
	fmt.Fprintf(&b, "Successful routes:    %s\n", SuccessStyle.Render(fmt.Sprint(sum.Succeeded)))
	fmt.Fprintf(&b, "Failed routes:        %s", failedStyle(sum.Failed).Render(fmt.Sprint(sum.Failed)))

	if breakdown := sum.Breakdown(); len(breakdown) > 0 {
		b.WriteString("\n\n")
		b.WriteString(SubtitleStyle.Render("Error breakdown:"))
		for _, ec := range breakdown {
			fmt.Fprintf(&b, "\n  %s: %d", ec.Code, ec.Count)
		}
	}
	if n := len(sum.Duplicates); n > 0 {
		b.WriteString("\n\n")
		b.WriteString(WarningStyle.Render(fmt.Sprintf("%d terms have duplicate configurations (run `landingroute index --duplicates`)", n)))
	}

	_, err := fmt.Fprintln(w, boxStyle.Render(b.String()))
	return err
}

func failedStyle(n int) lipgloss.Style {
	if n == 0 {
		return SuccessStyle
	}
	return ErrorStyle
}
