package sink

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Console renders tables as fixed-width text. The first row of each table
// is treated as the header.
type Console struct {
	out    io.Writer
	title  func(a ...interface{}) string
	header func(a ...interface{}) string
}

// NewConsole returns a console sink writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{
		out:    out,
		title:  color.New(color.Bold, color.Underline).SprintFunc(),
		header: color.New(color.FgGreen).SprintFunc(),
	}
}

// WriteTable renders one table. Column widths are computed from the
// printed form of every cell.
func (c *Console) WriteTable(_ context.Context, title string, rows [][]any) error {
	cells := make([][]string, len(rows))
	var widths []int
	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for j, v := range row {
			s := fmt.Sprint(v)
			cells[i][j] = s
			if j >= len(widths) {
				widths = append(widths, 0)
			}
			if len(s) > widths[j] {
				widths[j] = len(s)
			}
		}
	}

	if _, err := fmt.Fprintf(c.out, "%s\n", c.title(title)); err != nil {
		return err
	}
	for i, row := range cells {
		line := formatRow(row, widths)
		if i == 0 {
			line = c.header(line)
		}
		if _, err := fmt.Fprintln(c.out, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(c.out)
	return err
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for j, s := range cells {
		parts[j] = s + strings.Repeat(" ", widths[j]-len(s))
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}
