package fetcher

import "context"

// ArticleFile is the name of the artifact inside the article directory.
const ArticleFile = "article.html"

// ImageStore persists downloaded images.
type ImageStore interface {
	// SaveImage writes data to path, replacing any existing file.
	// Returns EFILESYSTEM on failure.
	SaveImage(ctx context.Context, path string, data []byte) error
}

// ArticleStore persists the workspace and the article artifact.
type ArticleStore interface {
	// EnsureWorkspace creates every directory of ws. Existing directories
	// are not an error. Returns EFILESYSTEM on any other failure.
	EnsureWorkspace(ctx context.Context, ws *Workspace) error

	// WriteArticle writes content to ArticleFile inside ws.ArticleDir,
	// overwriting prior content, and returns the file path.
	WriteArticle(ctx context.Context, ws *Workspace, content string) (string, error)
}
