package conversation

import (
	"path/filepath"
	"strings"
)

// FallbackLanguage is used for inline artifacts whose tag is not recognized.
const FallbackLanguage = "markup"

// PlainText is the tag for files whose extension is not recognized.
const PlainText = "plaintext"

var languageAliases = map[string]string{
	"python":     "python",
	"javascript": "javascript",
	"typescript": "typescript",
	"html":       "markup",
	"css":        "css",
	"json":       "json",
	"yaml":       "yaml",
	"bash":       "bash",
	"shell":      "bash",
	"sql":        "sql",
	"jsx":        "jsx",
	"tsx":        "tsx",
	"markup":     "markup",
}

var extensionLanguages = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".html": "html",
	".css":  "css",
	".json": "json",
	".md":   "markdown",
	".sql":  "sql",
	".yml":  "yaml",
	".yaml": "yaml",
	".xml":  "xml",
	".sh":   "bash",
	".bash": "bash",
	".ts":   "typescript",
	".jsx":  "jsx",
	".tsx":  "tsx",
}

// NormalizeLanguage maps an artifact language tag to a highlighter tag.
func NormalizeLanguage(tag string) string {
	if lang, ok := languageAliases[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return lang
	}
	return FallbackLanguage
}

// DetectLanguage guesses a language tag from a file name.
func DetectLanguage(path string) string {
	if lang, ok := extensionLanguages[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return PlainText
}
