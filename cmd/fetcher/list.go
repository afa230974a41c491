package main

import (
	"fmt"

	"github.com/fwojciec/fetcher"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	if deps.Archives == nil {
		return fetcher.Errorf(fetcher.EINVALID, "archive index is disabled")
	}

	filter := fetcher.ArchiveFilter{Limit: c.Limit}
	if c.Host != "" {
		filter.Authority = &c.Host
	}

	archives, err := deps.Archives.FindArchives(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(archives) == 0 {
		fmt.Fprintln(deps.Stdout, "No archives found. Run 'fetcher <url>' to archive an article.")
		return nil
	}

	for _, a := range archives {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", a.FetchedAt.Local().Format("2006-01-02 15:04"), a.SourceURL, a.ArticlePath)
	}

	return nil
}
