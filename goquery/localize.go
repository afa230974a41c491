package goquery

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/fetcher"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// Ensure Localizer implements fetcher.ImageLocalizer at compile time.
var _ fetcher.ImageLocalizer = (*Localizer)(nil)

// Localizer downloads the images of article fragments and rewrites their
// src attributes to the local files.
//
// Downloads run concurrently; rewrites are applied afterwards in document
// order, so the output does not depend on download timing.
type Localizer struct {
	fetcher     fetcher.Fetcher
	store       fetcher.ImageStore
	limiter     fetcher.DomainLimiter
	concurrency int
	strict      bool
	logger      *slog.Logger
}

// LocalizerOption configures a Localizer.
type LocalizerOption func(*Localizer)

// WithConcurrency sets the number of simultaneous downloads.
// Defaults to fetcher.DefaultImageConcurrency.
func WithConcurrency(n int) LocalizerOption {
	return func(l *Localizer) {
		l.concurrency = n
	}
}

// WithLimiter paces downloads per host.
func WithLimiter(limiter fetcher.DomainLimiter) LocalizerOption {
	return func(l *Localizer) {
		l.limiter = limiter
	}
}

// WithStrictImages keeps the remote URL of images that failed to download.
func WithStrictImages(strict bool) LocalizerOption {
	return func(l *Localizer) {
		l.strict = strict
	}
}

// WithLogger sets the logger used to report skipped images.
func WithLogger(logger *slog.Logger) LocalizerOption {
	return func(l *Localizer) {
		l.logger = logger
	}
}

// NewLocalizer creates a new Localizer that downloads with f and saves with store.
func NewLocalizer(f fetcher.Fetcher, store fetcher.ImageStore, opts ...LocalizerOption) *Localizer {
	l := &Localizer{
		fetcher:     f,
		store:       store,
		concurrency: fetcher.DefaultImageConcurrency,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.concurrency < 1 {
		l.concurrency = 1
	}
	return l
}

// imageDownload is one URL to fetch. References sharing a resolved URL
// share a download.
type imageDownload struct {
	url  string
	host string
	body []byte
	ok   bool
}

// imageFile is one local file and the distinct URLs that map to it, in
// document order.
type imageFile struct {
	path    string
	sources []*imageDownload
}

// imageTarget links a discovered <img> to its reference and download.
type imageTarget struct {
	img      *goquery.Selection
	ref      fetcher.ImageReference
	download *imageDownload
}

// Localize resolves every <img> of the fragments against pageURL, downloads
// the images into ws.ImagesDir and returns the rewritten fragments.
func (l *Localizer) Localize(ctx context.Context, pageURL string, ws *fetcher.Workspace, fragments []string) (*fetcher.Localization, error) {
	scheme, err := fetcher.URLScheme(pageURL)
	if err != nil {
		return nil, err
	}
	authority, err := fetcher.URLAuthority(pageURL)
	if err != nil {
		return nil, err
	}

	docs := make([]*goquery.Document, len(fragments))
	var targets []*imageTarget
	var downloads []*imageDownload
	var files []*imageFile
	byURL := make(map[string]*imageDownload)
	byPath := make(map[string]*imageFile)

	for i, fragment := range fragments {
		if !strings.Contains(fragment, "<img") {
			continue
		}

		doc, err := parseFragment(fragment)
		if err != nil {
			return nil, err
		}
		docs[i] = doc

		doc.Find("img").Each(func(_ int, img *goquery.Selection) {
			src, _ := img.Attr("src")
			ref, ok := ResolveImage(src, scheme, authority, ws)
			if !ok {
				if src != "" {
					l.logger.Debug("image ignored", "src", src)
				}
				return
			}

			d, exists := byURL[ref.ResolvedURL]
			if !exists {
				host, _ := fetcher.URLAuthority(ref.ResolvedURL)
				d = &imageDownload{url: ref.ResolvedURL, host: host}
				byURL[ref.ResolvedURL] = d
				downloads = append(downloads, d)

				f, seen := byPath[ref.LocalPath]
				if !seen {
					f = &imageFile{path: ref.LocalPath}
					byPath[ref.LocalPath] = f
					files = append(files, f)
				} else {
					l.logger.Warn("image file name collision",
						"path", ref.LocalPath,
						"previous", f.sources[len(f.sources)-1].url,
						"url", ref.ResolvedURL,
					)
				}
				f.sources = append(f.sources, d)
			}

			targets = append(targets, &imageTarget{img: img, ref: ref, download: d})
		})
	}

	if err := l.downloadAll(ctx, downloads); err != nil {
		return nil, err
	}
	if err := l.saveAll(ctx, files); err != nil {
		return nil, err
	}

	images := make([]fetcher.ImageReference, 0, len(targets))
	for _, t := range targets {
		t.ref.Downloaded = t.download.ok
		switch {
		case t.download.ok || !l.strict:
			t.img.SetAttr("src", t.ref.LocalPath)
		default:
			t.img.SetAttr("src", t.ref.ResolvedURL)
		}
		images = append(images, t.ref)
	}

	out := make([]string, len(fragments))
	for i, fragment := range fragments {
		if docs[i] == nil {
			out[i] = fragment
			continue
		}
		rewritten, err := docs[i].Find("body").Html()
		if err != nil {
			return nil, fetcher.Errorf(fetcher.EINTERNAL, "failed to render fragment: %v", err)
		}
		out[i] = rewritten
	}

	return &fetcher.Localization{
		Fragments: out,
		Images:    images,
	}, nil
}

func (l *Localizer) downloadAll(ctx context.Context, downloads []*imageDownload) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	for _, d := range downloads {
		g.Go(func() error {
			return l.download(gctx, d)
		})
	}

	return g.Wait()
}

// download fetches one image into memory. Network failures and
// unsuccessful statuses only skip the image; cancellation aborts the run.
func (l *Localizer) download(ctx context.Context, d *imageDownload) error {
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx, d.host); err != nil {
			return err
		}
	}

	resp, err := l.fetcher.Fetch(ctx, d.url)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.logger.Warn("image skipped", "url", d.url, "err", err)
		return nil
	}
	if !resp.OK() {
		l.logger.Warn("image skipped", "url", d.url, "status", resp.StatusCode)
		return nil
	}

	d.body = resp.Body
	d.ok = true
	return nil
}

// saveAll writes each file from the last of its sources that downloaded,
// the same result as writing every successful download in document order.
func (l *Localizer) saveAll(ctx context.Context, files []*imageFile) error {
	for _, f := range files {
		var last *imageDownload
		for _, d := range f.sources {
			if d.ok {
				last = d
			}
		}
		if last == nil {
			continue
		}
		if err := l.store.SaveImage(ctx, f.path, last.body); err != nil {
			return err
		}
	}
	return nil
}

// parseFragment parses a fragment with scripting disabled, so <noscript>
// content is markup and its images are found.
func parseFragment(fragment string) (*goquery.Document, error) {
	root, err := html.ParseWithOptions(strings.NewReader(fragment), html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fetcher.Errorf(fetcher.EINVALID, "failed to parse HTML: %v", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// ResolveImage turns an <img> src into a reference with an absolute URL
// and a local path inside ws.ImagesDir. Sources that are not absolute are
// appended to the page's scheme and authority. The second result is false
// when the image must be skipped: empty or inline sources, sources that
// stay invalid after resolution, and paths without a file name.
func ResolveImage(src, scheme, authority string, ws *fetcher.Workspace) (fetcher.ImageReference, bool) {
	if src == "" || isInlineSource(src) {
		return fetcher.ImageReference{}, false
	}

	resolved := src
	if !fetcher.ValidateURL(resolved) {
		component := src
		if !strings.HasPrefix(component, "/") {
			component = "/" + component
		}
		resolved = scheme + "://" + authority + component
	}
	if !fetcher.ValidateURL(resolved) {
		return fetcher.ImageReference{}, false
	}

	p, err := fetcher.URLPath(resolved)
	if err != nil {
		return fetcher.ImageReference{}, false
	}
	basename := path.Base(p)
	if basename == "/" || basename == "." || basename == ".." {
		return fetcher.ImageReference{}, false
	}

	return fetcher.ImageReference{
		OriginalSrc: src,
		ResolvedURL: resolved,
		LocalPath:   ws.ImagePath(basename),
	}, true
}

// isInlineSource checks if a src embeds its data instead of pointing to it.
func isInlineSource(src string) bool {
	src = strings.ToLower(strings.TrimSpace(src))
	return strings.HasPrefix(src, "data:") ||
		strings.HasPrefix(src, "javascript:")
}
