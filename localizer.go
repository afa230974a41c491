package fetcher

import "context"

// ImageReference tracks one <img> reference while it is being localized.
type ImageReference struct {
	OriginalSrc string
	ResolvedURL string
	LocalPath   string

	// Downloaded is false when the GET failed and no file was written.
	Downloaded bool
}

// Localization is the result of localizing the images of a set of fragments.
type Localization struct {
	// Fragments are the input fragments with image sources rewritten,
	// in the same order.
	Fragments []string

	// Images lists every reference that was rewritten or attempted.
	Images []ImageReference
}

// ImageLocalizer downloads the images referenced by HTML fragments and
// points the references at the local copies.
type ImageLocalizer interface {
	// Localize resolves image sources against pageURL, saves the images
	// into ws.ImagesDir and returns the rewritten fragments.
	// Failed image downloads are not errors.
	Localize(ctx context.Context, pageURL string, ws *Workspace, fragments []string) (*Localization, error)
}
