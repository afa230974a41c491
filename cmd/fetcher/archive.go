package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/fetcher"
	"github.com/fwojciec/fetcher/sqlite"
)

// State is a stage of an archiving run.
type State string

// Archiving run states, in order. StateFailed is terminal and reachable
// from any other state.
const (
	StateParseArgs       State = "parse_args"
	StateFetch           State = "fetch"
	StateExtract         State = "extract"
	StateDeriveWorkspace State = "derive_workspace"
	StateLocalize        State = "localize"
	StatePersist         State = "persist"
	StateIndex           State = "index"
	StateDone            State = "done"
	StateFailed          State = "failed"
)

// Run executes the archive command and prints the artifact path.
func (c *ArchiveCmd) Run(deps *Dependencies) error {
	if len(c.Extra) > 0 {
		fmt.Fprintf(deps.Stderr, "warning: ignoring extra arguments: %s\n", strings.Join(c.Extra, " "))
	}

	path, err := archive(deps, c.URL)
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, path)
	return nil
}

// archive runs one article through fetch, extraction, image localization
// and persistence. It returns the path of the written article.
func archive(deps *Dependencies, pageURL string) (path string, err error) {
	ctx := deps.Ctx
	logger := deps.Logger
	state := StateParseArgs

	enter := func(s State) {
		state = s
		logger.Debug("state", "state", s, "url", pageURL)
	}
	defer func() {
		if err != nil {
			logger.Debug("state",
				"state", StateFailed,
				"from", state,
				"kind", fetcher.ErrorCode(err),
				"url", pageURL,
			)
		}
	}()

	enter(StateParseArgs)
	if !fetcher.ValidateURL(pageURL) {
		return "", fetcher.Errorf(fetcher.EINVALID, "invalid URL %q", pageURL)
	}
	authority, err := fetcher.URLAuthority(pageURL)
	if err != nil {
		return "", err
	}

	enter(StateFetch)
	body, err := fetchPage(ctx, deps.Fetcher, pageURL)
	if err != nil {
		return "", err
	}

	enter(StateExtract)
	extraction, err := deps.Extractor.Extract(body)
	if err != nil {
		return "", err
	}

	enter(StateDeriveWorkspace)
	ws := fetcher.DeriveWorkspace(authority, extraction.Title, deps.Config.Home)
	if err := deps.Articles.EnsureWorkspace(ctx, ws); err != nil {
		return "", err
	}

	enter(StateLocalize)
	localized, err := deps.Localizer.Localize(ctx, pageURL, ws, extraction.Fragments)
	if err != nil {
		return "", err
	}

	enter(StatePersist)
	content, err := fetcher.FormatArticle(extraction.Title, localized.Fragments)
	if err != nil {
		return "", err
	}
	path, err = deps.Articles.WriteArticle(ctx, ws, content)
	if err != nil {
		return "", err
	}

	if deps.Archives != nil {
		enter(StateIndex)
		record := &fetcher.Archive{
			SourceURL:   pageURL,
			Authority:   authority,
			Title:       extraction.Title,
			ArticlePath: path,
			ContentHash: sqlite.HashContent(content),
			Images:      countDownloaded(localized.Images),
		}
		if err := deps.Archives.CreateArchive(ctx, record); err != nil {
			logger.Warn("failed to record archive", "url", pageURL, "err", err)
		}
	}

	enter(StateDone)
	return path, nil
}

// fetchPage GETs the article. Any status outside the success range is EFETCH.
func fetchPage(ctx context.Context, f fetcher.Fetcher, pageURL string) (string, error) {
	resp, err := f.Fetch(ctx, pageURL)
	if err != nil {
		var e *fetcher.Error
		if errors.As(err, &e) || ctx.Err() != nil {
			return "", err
		}
		return "", fetcher.Errorf(fetcher.EFETCH, "failed to fetch %s: %v", pageURL, err)
	}
	if !resp.OK() {
		return "", fetcher.Errorf(fetcher.EFETCH, "failed to fetch %s: status %d", pageURL, resp.StatusCode)
	}
	return string(resp.Body), nil
}

func countDownloaded(images []fetcher.ImageReference) int {
	n := 0
	for _, img := range images {
		if img.Downloaded {
			n++
		}
	}
	return n
}
