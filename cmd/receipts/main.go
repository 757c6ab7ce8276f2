// Command receipts is the terminal front end of the receipt API: it scans
// receipt images, browses and edits stored receipts, exports them and shows
// monthly spending summaries.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"receipt-scanner/internal/client"
	"receipt-scanner/internal/config"
	"receipt-scanner/internal/logging"
)

// errUsage marks errors caused by bad arguments rather than a failed call
var errUsage = errors.New("usage")

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{"scan", "scan one receipt image", runScan},
	{"batch", "scan several receipt images in one request", runBatch},
	{"list", "list stored receipts", runList},
	{"show", "show one receipt with its items", runShow},
	{"edit", "change fields or items of a receipt", runEdit},
	{"delete", "delete a receipt and its image", runDelete},
	{"export", "export receipts as csv or xlsx", runExport},
	{"summary", "show the monthly spending summary", runSummary},
	{"categories", "list the suggested categories", runCategories},
}

// app carries what every command needs
type app struct {
	cfg    *config.Config
	api    *client.Client
	logger *slog.Logger
	out    io.Writer
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("config.dotenv_failed", "error", err)
	}

	cfg := config.Load()
	logger := logging.Setup(cfg.Log)
	if err := cfg.Validate(); err != nil {
		logger.Error("config.invalid", "error", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	cmd, ok := lookup(os.Args[1])
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		cfg:    cfg,
		api:    client.NewFromConfig(cfg.Client, client.WithLogger(logger)),
		logger: logger,
		out:    os.Stdout,
	}

	if err := cmd.run(ctx, a, os.Args[2:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func lookup(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}
	return command{}, false
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: receipts <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-11s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The API root is read from RECEIPTS_API_URL (default http://localhost:8000/api).")
}
