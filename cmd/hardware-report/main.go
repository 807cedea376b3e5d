package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/myHin/hardware-keeper/internal/inventory"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

// hardware-report writes the full inventory to an XLSX file without going
// through the HTTP server. Useful for backups and offline spreadsheets.
func main() {
	fs := ff.NewFlagSet("hardware-report")
	var (
		dbPath      = fs.StringLong("db", "hardware-keeper.db", "Database file path")
		outPath     = fs.StringLong("out", "inventory.xlsx", "Output XLSX file path")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("HARDWARE_KEEPER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	db, err := inventory.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to open database", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Export only reads the database; no processor or storage needed
	service := inventory.NewService(db, nil, nil)

	data, err := service.ExportWorkbook()
	if err != nil {
		slog.Error("Failed to export inventory", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*outPath, data, 0644); err != nil {
		slog.Error("Failed to write report", "path", *outPath, "error", err)
		os.Exit(1)
	}

	slog.Info("Inventory report written", "path", *outPath)
}
