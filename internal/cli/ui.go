// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/retr0h/bazaar/internal/audit"
	"github.com/retr0h/bazaar/internal/client"
	"github.com/retr0h/bazaar/internal/product"
)

// Theme colors for terminal UI rendering.
var (
	Purple    = lipgloss.Color("99")
	Gray      = lipgloss.Color("245")
	LightGray = lipgloss.Color("241")
	White     = lipgloss.Color("15")
	Teal      = lipgloss.Color("#06ffa5")
	Red       = lipgloss.Color("196")
)

// Reusable inline styles for compact key-value output.
var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	valueStyle = lipgloss.NewStyle().Foreground(Teal)

	// DimStyle is a muted style for secondary text.
	DimStyle = lipgloss.NewStyle().Foreground(Gray)
	// FailStyle highlights failed outcomes.
	FailStyle = lipgloss.NewStyle().Bold(true).Foreground(Red)
)

// Section represents a header with its corresponding rows.
type Section struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// compactMaxColWidth is the maximum column width before truncation.
const compactMaxColWidth = 50

// KVMinColWidth is the minimum rendered width of a PrintKV pair.
const KVMinColWidth = 20

// PrintCompactTable renders sections as aligned, uncolored-border tables
// with alternating row colors.
func PrintCompactTable(
	sections []Section,
) {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(Purple)
	evenStyle := lipgloss.NewStyle().Foreground(Teal)
	oddStyle := lipgloss.NewStyle().Foreground(White)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(Purple)

	const colGap = 2

	for _, section := range sections {
		if section.Title != "" {
			fmt.Printf("\n  %s:\n", titleStyle.Render(section.Title))
		} else {
			fmt.Println()
		}

		flatRows := make([][]string, len(section.Rows))
		for r, row := range section.Rows {
			flat := make([]string, len(row))
			for c, cell := range row {
				flat[c] = strings.Join(strings.Fields(cell), " ")
			}
			flatRows[r] = flat
		}

		widths := ColumnWidths(section.Headers, flatRows)

		var hdr strings.Builder
		hdr.WriteString("  ")
		for i, h := range section.Headers {
			if i < len(section.Headers)-1 {
				hdr.WriteString(
					headerStyle.Render(fmt.Sprintf("%-*s", widths[i]+colGap, strings.ToUpper(h))),
				)
			} else {
				hdr.WriteString(headerStyle.Render(strings.ToUpper(h)))
			}
		}
		fmt.Println(hdr.String())

		for r, row := range flatRows {
			rowStyle := evenStyle
			if r%2 != 0 {
				rowStyle = oddStyle
			}
			var line strings.Builder
			line.WriteString("  ")
			for i := range section.Headers {
				cell := ""
				if i < len(row) {
					cell = row[i]
				}
				if len(cell) > widths[i] {
					cell = cell[:widths[i]-1] + "…"
				}
				if i < len(section.Headers)-1 {
					line.WriteString(rowStyle.Render(fmt.Sprintf("%-*s", widths[i]+colGap, cell)))
				} else {
					line.WriteString(rowStyle.Render(cell))
				}
			}
			fmt.Println(line.String())
		}
	}
}

// ColumnWidths returns the widest cell per column, capped at
// compactMaxColWidth.
func ColumnWidths(
	headers []string,
	rows [][]string,
) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i := range widths {
		if widths[i] > compactMaxColWidth {
			widths[i] = compactMaxColWidth
		}
	}

	return widths
}

// PrintKV prints label/value pairs on a single line. It expects an even
// number of arguments and prints nothing otherwise.
func PrintKV(
	pairs ...string,
) {
	if len(pairs)%2 != 0 || len(pairs) == 0 {
		return
	}

	rendered := make([]string, 0, len(pairs)/2)
	maxWidth := KVMinColWidth
	for i := 0; i < len(pairs); i += 2 {
		pair := labelStyle.Render(pairs[i]+":") + " " + valueStyle.Render(pairs[i+1])
		rendered = append(rendered, pair)
		if w := lipgloss.Width(pair); w > maxWidth {
			maxWidth = w
		}
	}

	var line strings.Builder
	line.WriteString("  ")
	for i, pair := range rendered {
		line.WriteString(pair)
		if i < len(rendered)-1 {
			pad := maxWidth - lipgloss.Width(pair) + 4
			line.WriteString(strings.Repeat(" ", pad))
		}
	}
	fmt.Println(line.String())
}

// FormatList joins list with commas, or returns "None" when empty.
func FormatList(
	list []string,
) string {
	if len(list) == 0 {
		return "None"
	}
	return strings.Join(list, ", ")
}

// SafeString dereferences s, returning "" for nil.
func SafeString(
	s *string,
) string {
	if s != nil {
		return *s
	}
	return ""
}

// FormatCents renders an amount in cents as a decimal price.
func FormatCents(
	cents int64,
) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// FormatTime renders t in RFC3339, or "-" when zero.
func FormatTime(
	t time.Time,
) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

// HandleError logs err. API errors are logged with their status code so
// auth and permission failures are easy to tell apart.
func HandleError(
	err error,
	logger *slog.Logger,
) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		msg := "request failed"
		switch apiErr.StatusCode {
		case 401:
			msg = "authentication error"
		case 403:
			msg = "authorization error"
		case 404:
			msg = "not found"
		}

		logger.Error(
			msg,
			slog.Int("code", apiErr.StatusCode),
			slog.String("response", apiErr.Message),
		)
		return
	}

	logger.Error("error", slog.String("error", err.Error()))
}

// renderOutcome colors FAIL outcomes.
func renderOutcome(
	o audit.Outcome,
) string {
	if o == audit.OutcomeFail {
		return FailStyle.Render(string(o))
	}
	return string(o)
}

// DisplayAuditEntries prints entries as a compact table.
func DisplayAuditEntries(
	entries []audit.Entry,
) {
	if len(entries) == 0 {
		fmt.Println(DimStyle.Render("  No audit entries."))
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			FormatTime(e.CreatedAt),
			e.Actor,
			string(e.Action),
			string(e.Outcome),
			SafeString(e.SubjectDescription),
		})
	}

	PrintCompactTable([]Section{{
		Title:   fmt.Sprintf("Audit Trail (%d)", len(entries)),
		Headers: []string{"ID", "CREATED", "ACTOR", "ACTION", "OUTCOME", "SUBJECT"},
		Rows:    rows,
	}})
}

// DisplayAuditEntry prints one entry as key/value lines.
func DisplayAuditEntry(
	e audit.Entry,
) {
	fmt.Println()
	PrintKV("ID", strconv.FormatInt(e.ID, 10), "Created", FormatTime(e.CreatedAt))
	PrintKV("Actor", e.Actor, "Action", string(e.Action))
	PrintKV("Outcome", renderOutcome(e.Outcome))
	if e.RequestID != "" {
		PrintKV("Request ID", e.RequestID)
	}
	if e.SubjectDescription != nil {
		PrintKV("Subject", *e.SubjectDescription)
	}
}

// DisplayProducts prints products as a compact table.
func DisplayProducts(
	products []product.Product,
) {
	if len(products) == 0 {
		fmt.Println(DimStyle.Render("  No products."))
		return
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			FormatCents(p.PriceCents),
			strconv.FormatInt(p.CategoryID, 10),
			strconv.FormatInt(p.BrandID, 10),
		})
	}

	PrintCompactTable([]Section{{
		Title:   fmt.Sprintf("Products (%d)", len(products)),
		Headers: []string{"ID", "NAME", "PRICE", "CATEGORY", "BRAND"},
		Rows:    rows,
	}})
}
