package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"receipt-scanner/internal/export"
	"receipt-scanner/internal/files"
	"receipt-scanner/internal/models"
	"receipt-scanner/internal/services"
	"receipt-scanner/internal/validation"
)

// WorkbookFilename is the name the xlsx export is saved under
const WorkbookFilename = "receipts.xlsx"

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("receipts "+name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError("invalid receipt id %q", raw)
	}
	return id, nil
}

// stringList collects a repeatable string flag
type stringList []string

func (l *stringList) String() string     { return strings.Join(*l, ",") }
func (l *stringList) Set(v string) error { *l = append(*l, v); return nil }

// intList collects a repeatable integer flag
type intList []int

func (l *intList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("not an integer: %q", v)
	}
	*l = append(*l, n)
	return nil
}

type filterFlags struct {
	sortBy    string
	sortOrder string
	from      string
	to        string
	category  string
	min       string
	max       string
	search    string
}

func (f *filterFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.sortBy, "sort-by", "", "created_at, date, total_amount or store_name")
	fs.StringVar(&f.sortOrder, "sort-order", "", "asc or desc")
	fs.StringVar(&f.from, "from", "", "earliest receipt date (YYYY-MM-DD)")
	fs.StringVar(&f.to, "to", "", "latest receipt date (YYYY-MM-DD)")
	fs.StringVar(&f.category, "category", "", "exact category")
	fs.StringVar(&f.min, "min", "", "minimum total amount")
	fs.StringVar(&f.max, "max", "", "maximum total amount")
	fs.StringVar(&f.search, "search", "", "store name contains")
}

func (f *filterFlags) params() (models.ReceiptFilterParams, error) {
	filters := models.ReceiptFilterParams{
		SortBy:    models.SortKey(f.sortBy),
		SortOrder: models.SortOrder(f.sortOrder),
		DateFrom:  f.from,
		DateTo:    f.to,
		Category:  f.category,
		Search:    f.search,
	}
	for _, bound := range []struct {
		raw  string
		dest **decimal.Decimal
	}{{f.min, &filters.AmountMin}, {f.max, &filters.AmountMax}} {
		if bound.raw == "" {
			continue
		}
		d, err := decimal.NewFromString(bound.raw)
		if err != nil {
			return filters, usageError("invalid amount %q", bound.raw)
		}
		*bound.dest = &d
	}
	if err := validation.GetValidator().Struct(&filters); err != nil {
		return filters, usageError("%s", strings.Join(validation.FormatErrors(err), ", "))
	}
	return filters, nil
}

func runScan(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("scan")
	noPreview := fs.Bool("no-preview", false, "do not keep a preview copy while scanning")
	if err := fs.Parse(args); err != nil {
		return usageError("%v", err)
	}
	if fs.NArg() != 1 {
		return usageError("receipts scan [-no-preview] <image>")
	}

	file, err := files.OpenLocal(fs.Arg(0))
	if err != nil {
		return err
	}

	var previews services.PreviewStoreInterface
	if !*noPreview {
		store, err := files.NewTempPreviewStore("")
		if err != nil {
			return err
		}
		defer store.Close()
		previews = store
	}

	upload := services.NewReceiptUpload(a.api, previews, nil, a.logger)
	defer upload.Close()
	upload.OnChange(func(state services.UploadState) {
		printUploadStatus(a.out, state)
	})

	if err := upload.SelectFile(file); err != nil {
		return errors.New(upload.State().Error)
	}
	upload.Upload(ctx)

	state := upload.State()
	if state.Status != services.UploadStatusDone {
		return errors.New(state.Error)
	}
	renderReceipt(a.out, state.Receipt)
	return nil
}

func runBatch(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("batch")
	if err := fs.Parse(args); err != nil {
		return usageError("%v", err)
	}
	if fs.NArg() == 0 {
		return usageError("receipts batch <image>...")
	}

	candidates := make([]files.File, 0, fs.NArg())
	for _, path := range fs.Args() {
		file, err := files.OpenLocal(path)
		if err != nil {
			fmt.Fprintln(a.out, warnStyle.Render(fmt.Sprintf("skipping %s: %v", path, err)))
			continue
		}
		candidates = append(candidates, file)
	}

	batch := services.NewBatchUpload(a.api, nil, a.logger)
	batch.OnChange(func(state services.BatchState) {
		if state.Progress > 0 {
			fmt.Fprintln(a.out, mutedStyle.Render(fmt.Sprintf("%s %d%%", state.Status, state.Progress)))
		}
	})

	batch.SelectFiles(candidates)
	state := batch.State()
	if len(state.Files) == 0 {
		return errors.New(state.Error)
	}
	if state.Error != "" {
		fmt.Fprintln(a.out, warnStyle.Render(state.Error))
	}

	batch.Upload(ctx)
	state = batch.State()
	if state.Status != services.UploadStatusDone {
		return errors.New(state.Error)
	}
	renderBatchResult(a.out, state.Result)
	return nil
}

func runList(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("list")
	page := fs.Int("page", 1, "page number")
	var ff filterFlags
	ff.register(fs)
	if err := fs.Parse(args); err != nil {
		return usageError("%v", err)
	}

	filters, err := ff.params()
	if err != nil {
		return err
	}

	list := services.NewReceiptList(a.api, a.logger)
	list.SetFilters(ctx, filters)
	if *page > 1 {
		list.SetPage(ctx, *page)
	}

	state := list.State()
	if state.Error != "" {
		return errors.New(state.Error)
	}
	renderReceiptList(a.out, state)
	return nil
}

func runShow(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return usageError("receipts show <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	receipt, err := a.api.GetReceipt(ctx, id)
	if err != nil {
		return err
	}
	renderReceipt(a.out, receipt)
	return nil
}

func runEdit(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("edit")
	var sets, items stringList
	var removals intList
	fs.Var(&sets, "set", "field=value; fields: store_name, date, total_amount, tax, payment_method, category (repeatable)")
	fs.Var(&items, "item", "N.column=value; columns: name, quantity, price (repeatable)")
	fs.Var(&removals, "remove-item", "remove item N (repeatable)")
	addItems := fs.Int("add-item", 0, "append this many empty items")
	if err := fs.Parse(args); err != nil {
		return usageError("%v", err)
	}
	if fs.NArg() != 1 {
		return usageError("receipts edit [flags] <id>")
	}
	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}

	receipt, err := a.api.GetReceipt(ctx, id)
	if err != nil {
		return err
	}
	editor := services.NewReceiptEditor(a.api, receipt, a.logger)

	// Item numbers in -item refer to the list after removals and additions
	sort.Sort(sort.Reverse(sort.IntSlice(removals)))
	for _, n := range removals {
		if err := editor.RemoveItem(n - 1); err != nil {
			return usageError("%v", err)
		}
	}
	for i := 0; i < *addItems; i++ {
		editor.AddItem()
	}

	for _, raw := range sets {
		field, value, ok := strings.Cut(raw, "=")
		if !ok {
			return usageError("-set wants field=value, got %q", raw)
		}
		update, err := services.ParseFieldUpdate(field, value)
		if err != nil {
			return usageError("%v", err)
		}
		if err := editor.SetField(update); err != nil {
			return usageError("%v", err)
		}
	}

	for _, raw := range items {
		target, value, ok := strings.Cut(raw, "=")
		if !ok {
			return usageError("-item wants N.column=value, got %q", raw)
		}
		num, column, ok := strings.Cut(target, ".")
		index, convErr := strconv.Atoi(num)
		if !ok || convErr != nil {
			return usageError("-item wants N.column=value, got %q", raw)
		}
		if err := editor.SetItem(index-1, services.ItemField(column), value); err != nil {
			return usageError("%v", err)
		}
	}

	saved, err := editor.Save(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, okStyle.Render(fmt.Sprintf("receipt %d saved", saved.ID)))
	renderReceipt(a.out, saved)
	return nil
}

func runDelete(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("delete")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return usageError("%v", err)
	}
	if fs.NArg() != 1 {
		return usageError("receipts delete [-yes] <id>")
	}
	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}

	if !*yes && !confirm(fmt.Sprintf("delete receipt %d? [y/N] ", id)) {
		fmt.Fprintln(a.out, mutedStyle.Render("cancelled"))
		return nil
	}

	if err := a.api.DeleteReceipt(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, okStyle.Render(fmt.Sprintf("receipt %d deleted", id)))
	return nil
}

func runExport(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("export")
	format := fs.String("format", "csv", "csv or xlsx")
	dir := fs.String("out", a.cfg.Client.DownloadDir, "directory to save the export in")
	var ff filterFlags
	ff.register(fs)
	if err := fs.Parse(args); err != nil {
		return usageError("%v", err)
	}

	filters, err := ff.params()
	if err != nil {
		return err
	}

	var path string
	switch *format {
	case "csv":
		path, err = a.api.DownloadCSV(ctx, &filters, *dir)
	case "xlsx":
		path, err = a.exportWorkbook(ctx, &filters, *dir)
	default:
		return usageError("unknown format %q (want csv or xlsx)", *format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, okStyle.Render("saved "+path))
	return nil
}

func (a *app) exportWorkbook(ctx context.Context, filters *models.ReceiptFilterParams, dir string) (string, error) {
	var buf bytes.Buffer
	if _, err := a.api.ExportCSV(ctx, filters, &buf); err != nil {
		return "", err
	}

	path := filepath.Join(dir, WorkbookFilename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.WriteWorkbook(f, &buf); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func runSummary(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("summary")
	year := fs.Int("year", 0, "year to show (default: most recent month)")
	month := fs.Int("month", 0, "month to show, 1-12")
	if err := fs.Parse(args); err != nil {
		return usageError("%v", err)
	}
	if (*year == 0) != (*month == 0) {
		return usageError("-year and -month go together")
	}
	if *month < 0 || *month > 12 {
		return usageError("month must be between 1 and 12")
	}

	selector := services.NewMonthlySummarySelector(a.api, a.logger)
	defer selector.Close()

	selector.Init(ctx)
	if *year != 0 {
		selector.SelectMonth(ctx, *year, *month)
	}

	state := selector.State()
	if state.Error != "" {
		return errors.New(state.Error)
	}
	if !state.HasSelection() {
		fmt.Fprintln(a.out, mutedStyle.Render("no dated receipts yet"))
		return nil
	}
	renderSummary(a.out, state)
	return nil
}

func runCategories(_ context.Context, a *app, _ []string) error {
	for _, category := range models.SuggestedCategories() {
		fmt.Fprintln(a.out, category)
	}
	return nil
}

func confirm(prompt string) bool {
	fmt.Fprint(os.Stderr, prompt)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
