package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"receipt-scanner/internal/models"
	"receipt-scanner/internal/services"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func printUploadStatus(w io.Writer, state services.UploadState) {
	switch state.Status {
	case services.UploadStatusIdle:
		if state.File == nil {
			return
		}
		line := "selected " + state.File.Name()
		if state.Preview != nil {
			line += " (preview " + state.Preview.Path + ")"
		}
		fmt.Fprintln(w, mutedStyle.Render(line))
	case services.UploadStatusUploading:
		fmt.Fprintln(w, mutedStyle.Render("uploading..."))
	case services.UploadStatusAnalyzing:
		fmt.Fprintln(w, mutedStyle.Render("analyzing..."))
	case services.UploadStatusDone:
		fmt.Fprintln(w, okStyle.Render("scan complete"))
	}
}

func renderReceipt(w io.Writer, r *models.Receipt) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("#%d %s", r.ID, r.DisplayStoreName())))

	fields := newTable(w, "field", "value")
	fields.AppendBulk([][]string{
		{"date", text(r.Date)},
		{"total", yen(r.TotalAmount)},
		{"tax", yen(r.Tax)},
		{"payment", text(r.PaymentMethod)},
		{"category", text(r.Category)},
		{"image", r.ImagePath},
	})
	fields.Render()

	if len(r.Items) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no items"))
		return
	}
	items := newTable(w, "#", "name", "qty", "price")
	for i, item := range r.Items {
		items.Append([]string{strconv.Itoa(i + 1), text(item.Name), number(item.Quantity), yen(item.Price)})
	}
	items.Render()
}

func renderReceiptList(w io.Writer, state services.ReceiptListState) {
	if len(state.Items) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no receipts"))
		return
	}

	table := newTable(w, "id", "date", "store", "total", "category", "items")
	for _, r := range state.Items {
		table.Append([]string{
			strconv.FormatInt(r.ID, 10),
			text(r.Date),
			r.DisplayStoreName(),
			yen(r.TotalAmount),
			text(r.Category),
			strconv.Itoa(len(r.Items)),
		})
	}
	table.Render()
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("page %d/%d, %d receipts", state.Page, state.TotalPages(), state.Total)))
}

func renderBatchResult(w io.Writer, result *models.BatchScanResult) {
	table := newTable(w, "file", "result", "receipt")
	for _, item := range result.Results {
		switch {
		case item.Success && item.Receipt != nil:
			table.Append([]string{item.Filename, okStyle.Render("ok"), fmt.Sprintf("#%d %s", item.Receipt.ID, item.Receipt.DisplayStoreName())})
		case item.Error != nil:
			table.Append([]string{item.Filename, errorStyle.Render("failed"), *item.Error})
		default:
			table.Append([]string{item.Filename, errorStyle.Render("failed"), ""})
		}
	}
	table.Render()

	summary := fmt.Sprintf("%d succeeded, %d failed", result.SuccessCount, result.ErrorCount)
	if result.ErrorCount > 0 {
		fmt.Fprintln(w, warnStyle.Render(summary))
	} else {
		fmt.Fprintln(w, okStyle.Render(summary))
	}
}

func renderSummary(w io.Writer, state services.MonthlySummaryState) {
	months := make([]string, 0, len(state.Months))
	for _, m := range state.Months {
		label := fmt.Sprintf("%d-%02d (%d)", m.Year, m.Month, m.Count)
		if m.Year == state.SelectedYear && m.Month == state.SelectedMonth {
			label = titleStyle.Render(label)
		}
		months = append(months, label)
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, joinWithSpace(months)...))

	summary := state.Summary
	if summary == nil {
		return
	}
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%d年%d月", summary.Year, summary.Month)))

	table := newTable(w, "category", "total", "count", "share")
	for _, c := range summary.Categories {
		table.Append([]string{c.Category, "¥" + c.TotalAmount.String(), strconv.FormatInt(c.Count, 10), share(c.TotalAmount, summary.TotalAmount)})
	}
	table.SetFooter([]string{"total", "¥" + summary.TotalAmount.String(), strconv.FormatInt(summary.TotalCount, 10), ""})
	table.Render()
}

func joinWithSpace(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, p)
	}
	return out
}

func share(part, total decimal.Decimal) string {
	if total.IsZero() {
		return ""
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

func text(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func yen(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return "¥" + d.Decimal.String()
}

func number(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return d.Decimal.String()
}
