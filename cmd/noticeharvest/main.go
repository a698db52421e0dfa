package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/noticeharvest"
	"github.com/fwojciec/noticeharvest/fitz"
	nhfs "github.com/fwojciec/noticeharvest/fs"
	"github.com/fwojciec/noticeharvest/gofpdf"
	"github.com/fwojciec/noticeharvest/goquery"
	"github.com/fwojciec/noticeharvest/harvest"
	"github.com/fwojciec/noticeharvest/htmltomarkdown"
	nhhttp "github.com/fwojciec/noticeharvest/http"
	"github.com/fwojciec/noticeharvest/pdf"
	"github.com/fwojciec/noticeharvest/postgres"
	"github.com/fwojciec/noticeharvest/readability"
	"github.com/fwojciec/noticeharvest/rod"
	nhslog "github.com/fwojciec/noticeharvest/slog"
	"github.com/fwojciec/noticeharvest/sqlite"
	"github.com/fwojciec/noticeharvest/tesseract"
	"github.com/fwojciec/noticeharvest/textract"
	"github.com/fwojciec/noticeharvest/trafilatura"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := loadEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// loadEnv loads variables from a dotenv file when it exists. Variables
// already set in the environment win.
func loadEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Database connections opened by Run.
	SQLite   *sqlite.DB
	Postgres *postgres.DB

	// Records overrides the storage backend. Used for end-to-end testing.
	Records noticeharvest.RecordService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	if m.SQLite != nil {
		errs = append(errs, m.SQLite.Close())
	}
	if m.Postgres != nil {
		errs = append(errs, m.Postgres.Close())
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("noticeharvest"),
		kong.Description("Harvest FDA Ghana recalls, public alerts and press releases."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'noticeharvest --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	records, err := m.openRecords(cli, stderr)
	if err != nil {
		return err
	}
	defer m.Close()
	deps.Records = nhslog.NewLoggingRecordService(records, deps.Logger)

	if kongCtx.Command() == "run" {
		deps.Harvester = newHarvester(&cli.Run, deps.Records, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// openRecords returns the storage backend: Postgres when a DSN is
// configured, else the local SQLite database.
func (m *Main) openRecords(cli *CLI, stderr io.Writer) (noticeharvest.RecordService, error) {
	if m.Records != nil {
		return m.Records, nil
	}

	if cli.PostgresDSN != "" {
		m.Postgres = postgres.NewDB(cli.PostgresDSN)
		if err := m.Postgres.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Check NOTICEHARVEST_POSTGRES_DSN, or unset it to use SQLite")
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		return postgres.NewRecordService(m.Postgres), nil
	}

	path := m.DBPath
	if cli.DB != "" {
		path = cli.DB
	}
	if path == "" {
		path = defaultDBPath()
	}
	m.SQLite = sqlite.NewDB(path)
	if err := m.SQLite.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set NOTICEHARVEST_DB to use a different database path")
		return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return sqlite.NewRecordService(m.SQLite), nil
}

// newHarvester wires the pipeline collaborators for the run command.
func newHarvester(cfg *RunCmd, records noticeharvest.RecordWriter, logger *slog.Logger) *harvest.Harvester {
	renderer := rod.NewRenderer(rod.WithHeadless(cfg.Headless), rod.WithLogger(logger))
	downloader := nhhttp.NewDownloader(nhhttp.WithRateLimit(cfg.Rate))

	engine := &textract.Engine{
		TextLayer:  pdf.NewReader(),
		Rasterizer: fitz.NewRasterizer(),
		Recognizer: tesseract.NewRecognizer(tesseract.WithLanguages(strings.Split(cfg.OCRLang, "+")...)),
		Logger:     logger,
	}

	return &harvest.Harvester{
		Renderer:   rod.NewLoggingRenderer(renderer, logger),
		Locator:    goquery.NewTableLocator(),
		Resolver:   goquery.NewRowResolver(),
		Details:    goquery.NewDetailExtractor(),
		Downloader: nhslog.NewLoggingDownloader(downloader, logger),
		Documents:  gofpdf.NewRenderer(),
		Artifacts:  nhfs.NewStore(cfg.OutputDir),
		Text:       nhslog.NewLoggingTextRecoverer(engine, logger),
		Records:    records,
		Extractors: []noticeharvest.Extractor{
			trafilatura.NewExtractor(),
			readability.NewExtractor(),
		},
		Converter: htmltomarkdown.NewConverter(htmltomarkdown.WithPlainText()),
		Logger:    logger,
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "noticeharvest.db"
	}
	dir := filepath.Join(home, ".noticeharvest")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "noticeharvest.db")
}
