package modals

import (
	"path/filepath"

	"github.com/mattn/go-runewidth"
)

// TruncatePath shortens a path from the left, keeping the file name visible
func TruncatePath(path string, maxWidth int) string {
	if runewidth.StringWidth(path) <= maxWidth {
		return path
	}
	base := filepath.Base(path)
	if runewidth.StringWidth(base)+4 >= maxWidth {
		return runewidth.Truncate(base, maxWidth, "…")
	}
	rest := maxWidth - runewidth.StringWidth(base) - 2
	dir := filepath.Dir(path)
	runes := []rune(dir)
	for len(runes) > 0 && runewidth.StringWidth(string(runes)) > rest {
		runes = runes[1:]
	}
	return "…" + string(runes) + string(filepath.Separator) + base
}

// TruncateString shortens s to maxWidth cells with an ellipsis
func TruncateString(s string, maxWidth int) string {
	return runewidth.Truncate(s, maxWidth, "…")
}
