// Package language maps file extensions to language tags. The table is the
// single source of truth shared by the file selector and the rule loader so
// the two can never disagree about what an extension means.
package language

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	// All is the sentinel tag meaning a pattern applies to every language.
	All = "all"
	// Unknown is returned for unmapped extensions. It is a valid result:
	// patterns tagged All still apply to it, language-specific ones never do.
	Unknown = "unknown"
)

var byExtension = map[string]string{
	".go":         "go",
	".py":         "python",
	".pyw":        "python",
	".js":         "javascript",
	".jsx":        "javascript",
	".mjs":        "javascript",
	".ts":         "typescript",
	".tsx":        "typescript",
	".java":       "java",
	".rb":         "ruby",
	".erb":        "ruby",
	".php":        "php",
	".phtml":      "php",
	".cs":         "csharp",
	".c":          "c",
	".h":          "c",
	".cpp":        "cpp",
	".cc":         "cpp",
	".cxx":        "cpp",
	".hpp":        "cpp",
	".rs":         "rust",
	".swift":      "swift",
	".kt":         "kotlin",
	".kts":        "kotlin",
	".scala":      "scala",
	".pl":         "perl",
	".pm":         "perl",
	".lua":        "lua",
	".sh":         "shell",
	".bash":       "shell",
	".zsh":        "shell",
	".ps1":        "powershell",
	".psm1":       "powershell",
	".psd1":       "powershell",
	".bat":        "batch",
	".cmd":        "batch",
	".sql":        "sql",
	".html":       "html",
	".htm":        "html",
	".xml":        "xml",
	".jsp":        "jsp",
	".asp":        "asp",
	".aspx":       "asp",
	".vue":        "javascript",
	".json":       "json",
	".yaml":       "yaml",
	".yml":        "yaml",
	".toml":       "toml",
	".ini":        "config",
	".cfg":        "config",
	".conf":       "config",
	".properties": "config",
	".env":        "config",
	".tf":         "terraform",
	".tfvars":     "terraform",
	".dockerfile": "dockerfile",
	".groovy":     "groovy",
	".r":          "r",
	".dart":       "dart",
	".ex":         "elixir",
	".exs":        "elixir",
}

// Classify returns the language tag for a path's extension, or Unknown.
// Pure lookup over the lowercased extension; never fails.
func Classify(path string) string {
	if lang, ok := byExtension[normalizeExt(filepath.Ext(path))]; ok {
		return lang
	}
	return Unknown
}

// KnownExtension reports whether the path's extension appears in the table.
func KnownExtension(path string) bool {
	_, ok := byExtension[normalizeExt(filepath.Ext(path))]
	return ok
}

// FromGlob translates a glob-style extension string (e.g. "*.py", ".py" or
// "py") into a language tag. ok is false when the extension is unmapped.
func FromGlob(glob string) (string, bool) {
	ext := strings.TrimPrefix(strings.TrimSpace(glob), "*")
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	lang, ok := byExtension[normalizeExt(ext)]
	return lang, ok
}

// Extensions returns the known extensions sorted for stable iteration.
func Extensions() []string {
	out := make([]string, 0, len(byExtension))
	for ext := range byExtension {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

func normalizeExt(ext string) string {
	return strings.ToLower(ext)
}
