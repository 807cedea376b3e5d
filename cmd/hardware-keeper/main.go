package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/myHin/hardware-keeper/internal/extraction"
	"github.com/myHin/hardware-keeper/internal/inventory"
	"github.com/myHin/hardware-keeper/internal/ocr"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("hardware-keeper")
	var (
		port        = fs.IntLong("port", 8080, "HTTP server port")
		dbPath      = fs.StringLong("db", "hardware-keeper.db", "Database file path")
		storagePath = fs.StringLong("storage", "./receipts", "Receipt image storage directory")
		ocrProvider = fs.StringLong("ocr", "auto", "OCR provider: 'vision', 'gemini', 'mock', or 'auto'")
		visionKey   = fs.StringLong("vision-key", "", "Google Cloud Vision API key (or set HARDWARE_KEEPER_VISION_KEY)")
		geminiKey   = fs.StringLong("gemini-key", "", "Google Gemini API key (or set HARDWARE_KEEPER_GEMINI_KEY)")
		geminiModel = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		authUser    = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass    = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
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

	slog.Info("Initializing database...")
	db, err := inventory.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	provider, err := selectProvider(*ocrProvider, *visionKey, *geminiKey, *geminiModel)
	if err != nil {
		slog.Error("Failed to initialize OCR provider", "error", err)
		os.Exit(1)
	}
	defer provider.Close()
	slog.Info("OCR provider ready", "provider", provider.Name())

	slog.Info("Initializing storage...")
	store, err := inventory.NewLocalStorage(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	processor := extraction.NewProcessor(provider)
	service := inventory.NewService(db, processor, store)

	basicAuth := inventory.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := inventory.NewServer(service, basicAuth)

	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}

// selectProvider builds the configured OCR provider. "auto" picks the first
// provider with a credential and falls back to the fixture provider when
// none is configured.
func selectProvider(name, visionKey, geminiKey, geminiModel string) (ocr.Provider, error) {
	switch name {
	case "vision":
		if visionKey == "" {
			return nil, fmt.Errorf("vision provider requires --vision-key or HARDWARE_KEEPER_VISION_KEY")
		}
		return ocr.NewVision(visionKey)
	case "gemini":
		if geminiKey == "" {
			return nil, fmt.Errorf("gemini provider requires --gemini-key or HARDWARE_KEEPER_GEMINI_KEY")
		}
		return ocr.NewGemini(geminiKey, geminiModel)
	case "mock":
		return ocr.NewMock(), nil
	case "auto":
		if visionKey != "" {
			return ocr.NewVision(visionKey)
		}
		if geminiKey != "" {
			return ocr.NewGemini(geminiKey, geminiModel)
		}
		slog.Warn("No OCR credential configured, using the fixture provider")
		return ocr.NewMock(), nil
	default:
		return nil, fmt.Errorf("invalid OCR provider %q (valid: vision, gemini, mock, auto)", name)
	}
}
