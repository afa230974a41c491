package fetcher

import (
	"path/filepath"
	"regexp"
	"strings"
)

// RootDirName is the directory under the home directory that holds every
// archived article.
const RootDirName = ".fetcher"

// UntitledDirName names the article directory of pages without a title.
const UntitledDirName = "untitled"

// Workspace is the set of local directories used to archive one article.
// ImagesDir is inside ArticleDir, which is inside AuthorityDir, which is
// inside Root.
type Workspace struct {
	Root         string
	AuthorityDir string
	ArticleDir   string
	ImagesDir    string
}

// ArticlePath returns the location of the artifact.
func (w *Workspace) ArticlePath() string {
	return filepath.Join(w.ArticleDir, ArticleFile)
}

// ImagePath returns the location of an image with the given base name.
func (w *Workspace) ImagePath(basename string) string {
	return filepath.Join(w.ImagesDir, basename)
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// SanitizeTitle replaces every run of whitespace with a single underscore.
// Path separators become underscores too, so the result is one path
// component.
func SanitizeTitle(title string) string {
	return replaceSeparators(whitespaceRe.ReplaceAllString(title, "_"))
}

func replaceSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == filepath.Separator {
			return '_'
		}
		return r
	}, s)
}

// pathComponent returns name, or UntitledDirName when name is blank or
// would refer to the current or parent directory.
func pathComponent(name string) string {
	if strings.Trim(name, "_") == "" || name == "." || name == ".." {
		return UntitledDirName
	}
	return name
}

// DeriveWorkspace computes the workspace of an article. The result depends
// only on its arguments: {homeDir}/.fetcher/{authority}/{title}/images.
// Authority and title always map to a single directory each, whatever the
// page declares.
func DeriveWorkspace(authority, articleTitle, homeDir string) *Workspace {
	dirname := pathComponent(SanitizeTitle(articleTitle))

	root := filepath.Join(homeDir, RootDirName)
	authorityDir := filepath.Join(root, pathComponent(replaceSeparators(authority)))
	articleDir := filepath.Join(authorityDir, dirname)

	return &Workspace{
		Root:         root,
		AuthorityDir: authorityDir,
		ArticleDir:   articleDir,
		ImagesDir:    filepath.Join(articleDir, "images"),
	}
}
