package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/fetcher"
)

// Environment variables.
const (
	EnvConfig = "FETCHER_CONFIG"
	EnvHome   = "FETCHER_HOME"
	EnvDB     = "FETCHER_DB"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config fetcher.Config

	Fetcher   fetcher.Fetcher
	Extractor fetcher.Extractor
	Localizer fetcher.ImageLocalizer
	Articles  fetcher.ArticleStore

	// Archives is nil when the index is disabled.
	Archives fetcher.ArchiveService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config           string        `help:"Path to the configuration file (default ~/.fetcher/config.yaml)"`
	Home             string        `help:"Directory that holds the .fetcher archive root"`
	Timeout          time.Duration `short:"t" help:"Timeout for each HTTP request (default 30s)"`
	ImageConcurrency int           `short:"c" help:"Simultaneous image downloads (default 4)"`
	ImageRPS         float64       `name:"image-rps" help:"Image requests per second per host, 0 for unlimited"`
	StrictImages     bool          `negatable:"" help:"Keep remote URLs for images that fail to download"`
	Index            bool          `negatable:"" help:"Record the run in the archive index (default true)"`
	LogLevel         string        `help:"Log level: debug, info, warn or error"`
	LogFile          string        `help:"Write logs to a rotated file instead of stderr"`

	Archive ArchiveCmd `cmd:"" default:"withargs" help:"Archive an article (default command)"`
	List    ListCmd    `cmd:"" help:"List archived articles, newest first"`
}

// apply overrides cfg with the flags named in set, the ones given on the
// command line.
func (c *CLI) apply(cfg *fetcher.Config, set map[string]bool) {
	if set["home"] {
		cfg.Home = c.Home
	}
	if set["timeout"] {
		cfg.Timeout = c.Timeout
	}
	if set["image-concurrency"] {
		cfg.ImageConcurrency = c.ImageConcurrency
	}
	if set["image-rps"] {
		cfg.ImageRPS = c.ImageRPS
	}
	if set["strict-images"] {
		cfg.StrictImages = c.StrictImages
	}
	if set["index"] {
		cfg.Index = c.Index
	}
	if set["log-level"] {
		cfg.LogLevel = c.LogLevel
	}
	if set["log-file"] {
		cfg.LogFile = c.LogFile
	}
}

// explicitFlags returns the names of the flags given on the command line.
func explicitFlags(kongCtx *kong.Context) map[string]bool {
	set := make(map[string]bool)
	for _, f := range kongCtx.Flags() {
		if f.Set {
			set[f.Name] = true
		}
	}
	return set
}

// ArchiveCmd is the "archive" subcommand.
type ArchiveCmd struct {
	URL   string   `arg:"" help:"Article URL"`
	Extra []string `arg:"" optional:"" help:"Ignored; only the first URL is archived"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit int    `short:"n" default:"20" help:"Maximum number of archives to show"`
	Host  string `help:"Only show archives from this host"`
}
