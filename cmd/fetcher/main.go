package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/fetcher"
	"github.com/fwojciec/fetcher/fs"
	"github.com/fwojciec/fetcher/goquery"
	fetcherhttp "github.com/fwojciec/fetcher/http"
	"github.com/fwojciec/fetcher/rate"
	fetcherslog "github.com/fwojciec/fetcher/slog"
	"github.com/fwojciec/fetcher/sqlite"
	"github.com/fwojciec/fetcher/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m := NewMain()
	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	m.Close()
	stop()

	os.Exit(ExitCode(err))
}

// Main represents the program.
type Main struct {
	// Getenv looks up environment variables. Set before calling Run().
	Getenv func(string) string

	// UserHomeDir locates the default home directory.
	UserHomeDir func() (string, error)

	// Archive index, opened on first use.
	DB *sqlite.DB

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv:      os.Getenv,
		UserHomeDir: os.UserHomeDir,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}
	for _, c := range m.closers {
		errs = append(errs, c.Close())
	}
	m.closers = nil
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments. Failures are reported on
// stderr and returned; ExitCode maps them to the process exit status.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	err := m.run(ctx, args, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", errorMessage(err))
	}
	return err
}

func (m *Main) run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("fetcher"),
		kong.Description("Archive a web article with its images as a local HTML file."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 || isHelp(args[0]) {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return fetcher.Errorf(fetcher.EINVALID, "%v", err)
	}

	cfg, err := m.loadConfig(cli, explicitFlags(kongCtx))
	if err != nil {
		return err
	}
	deps.Config = cfg

	logger, err := m.newLogger(cfg, stderr)
	if err != nil {
		return err
	}
	deps.Logger = logger

	if cfg.Index {
		m.DB = sqlite.NewDB(cfg.IndexPath())
		deps.Archives = sqlite.NewArchiveService(m.DB)
	}

	if strings.HasPrefix(kongCtx.Command(), "archive") {
		httpFetcher := fetcherslog.NewLoggingFetcher(
			fetcherhttp.NewFetcher(fetcherhttp.WithTimeout(cfg.Timeout)),
			logger,
		)
		store := fs.NewStore()
		localizer := goquery.NewLocalizer(httpFetcher, store,
			goquery.WithConcurrency(cfg.ImageConcurrency),
			goquery.WithLimiter(rate.NewDomainLimiter(cfg.ImageRPS)),
			goquery.WithStrictImages(cfg.StrictImages),
			goquery.WithLogger(logger),
		)

		deps.Fetcher = httpFetcher
		deps.Extractor = fetcherslog.NewLoggingExtractor(goquery.NewExtractor(), logger)
		deps.Localizer = fetcherslog.NewLoggingLocalizer(localizer, logger)
		deps.Articles = store
	}

	return kongCtx.Run(deps)
}

// loadConfig resolves the configuration. Precedence from lowest to highest:
// defaults, config file, environment, flags.
func (m *Main) loadConfig(cli *CLI, set map[string]bool) (fetcher.Config, error) {
	home := cli.Home
	if home == "" {
		home = m.getenv(EnvHome)
	}
	if home == "" {
		h, err := m.UserHomeDir()
		if err != nil {
			return fetcher.Config{}, fetcher.Errorf(fetcher.EINVALID, "cannot determine home directory: %v", err)
		}
		home = h
	}

	cfg := fetcher.DefaultConfig(home)

	path := cli.Config
	if path == "" {
		path = m.getenv(EnvConfig)
	}
	if path == "" {
		path = filepath.Join(cfg.RootDir(), fetcher.DefaultConfigFile)
	}
	if err := yaml.LoadConfig(path, &cfg); err != nil {
		return fetcher.Config{}, err
	}

	if v := m.getenv(EnvHome); v != "" {
		cfg.Home = v
	}
	if v := m.getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}

	cli.apply(&cfg, set)

	if err := cfg.Validate(); err != nil {
		return fetcher.Config{}, err
	}
	return cfg, nil
}

// newLogger writes to stderr, or to a rotated file when one is configured.
func (m *Main) newLogger(cfg fetcher.Config, stderr io.Writer) (*slog.Logger, error) {
	level, err := fetcher.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if cfg.LogFile == "" {
		return fetcherslog.NewLogger(stderr, level), nil
	}
	w := fetcherslog.NewFileWriter(cfg.LogFile)
	m.closers = append(m.closers, w)
	return fetcherslog.NewLogger(w, level), nil
}

func (m *Main) getenv(key string) string {
	if m.Getenv == nil {
		return ""
	}
	return m.Getenv(key)
}

func isHelp(arg string) bool {
	return arg == "help" || arg == "--help" || arg == "-h"
}

// errorMessage returns the user-facing text of err.
func errorMessage(err error) string {
	var e *fetcher.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
