package fetcher

import "strings"

// FormatArticle concatenates the title and the article fragments into the
// artifact text. The title is the first line; every fragment follows on its
// own, separated by newlines, in the order given.
// Returns EEMPTY if the result is empty or whitespace-only.
func FormatArticle(title string, fragments []string) (string, error) {
	parts := make([]string, 0, len(fragments)+1)
	parts = append(parts, title)
	parts = append(parts, fragments...)

	content := strings.Join(parts, "\n")
	if strings.TrimSpace(content) == "" {
		return "", Errorf(EEMPTY, "no content to save")
	}
	return content, nil
}
