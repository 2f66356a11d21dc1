// Package langdetect identifies the language of code blocks and files.
// It uses go-enry to resolve fence info strings, shebangs and file names,
// and falls back to content heuristics for untagged Markdown code blocks.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names returned by this package.
const (
	JavaScript = "javascript"

	langGo     = "go"
	langPython = "python"
	langJSON   = "json"
	langYAML   = "yaml"
	langHTML   = "html"
	langSQL    = "sql"
	langText   = "text"
	langBash   = "bash"
)

// FromInfoString resolves the language named by a fenced code block info
// string such as "js", "javascript title=app.js" or "{.node}".
// It returns "" when the info string is empty or names no known language.
func FromInfoString(info string) string {
	tag := infoTag(info)
	if tag == "" {
		return ""
	}

	lang, ok := enry.GetLanguageByAlias(tag)
	if !ok {
		return ""
	}
	return normalize(lang)
}

// infoTag extracts the language word from an info string.
func infoTag(info string) string {
	info = strings.TrimSpace(info)
	info = strings.TrimPrefix(info, "{")
	info = strings.TrimPrefix(info, ".")

	end := strings.IndexAny(info, " \t{},")
	if end >= 0 {
		info = info[:end]
	}
	return strings.ToLower(info)
}

// IsJavaScript reports whether info names JavaScript, either through a
// known alias or through one of the extra tags (compared case-insensitively).
func IsJavaScript(info string, extra ...string) bool {
	if FromInfoString(info) == JavaScript {
		return true
	}

	tag := infoTag(info)
	if tag == "" {
		return false
	}
	for _, e := range extra {
		if strings.EqualFold(tag, strings.TrimSpace(e)) {
			return true
		}
	}
	return false
}

// FromFilename returns the language of a file from its name, falling back
// to its shebang line. It returns "" when neither identifies a language.
func FromFilename(path string, content []byte) string {
	if lang, safe := enry.GetLanguageByExtension(filepath.Base(path)); safe {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}
	return ""
}

// Detect returns the detected language for code content.
// Returns "text" if detection fails or confidence is low.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return langText
	}

	// Shebangs are the most reliable signal.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	candidates := []string{
		"JavaScript", "TypeScript", "Go", "Python", "Shell",
		"Ruby", "Java", "C", "C++", "SQL", "JSON", "YAML", "HTML", "CSS",
	}

	// Only use the classifier result if it is confident.
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return langText
}

// LooksLikeJavaScript reports whether untagged content is detected as JavaScript.
func LooksLikeJavaScript(content []byte) bool {
	return Detect(content) == JavaScript
}

// detectByPattern checks for patterns that are highly indicative of a language.
func detectByPattern(content []byte) string {
	contentStr := string(content)
	trimmed := bytes.TrimSpace(content)

	detectors := []func() string{
		func() string { return detectGo(trimmed) },
		func() string { return detectPython(contentStr) },
		func() string { return detectHTML(trimmed) },
		func() string { return detectJSON(trimmed) },
		func() string { return detectSQL(contentStr) },
		func() string { return detectJavaScript(contentStr) },
		func() string { return detectYAML(content) },
	}
	for _, detect := range detectors {
		if lang := detect(); lang != "" {
			return lang
		}
	}

	return ""
}

func detectGo(trimmed []byte) string {
	if bytes.HasPrefix(trimmed, []byte("package ")) {
		return langGo
	}
	return ""
}

func detectPython(contentStr string) string {
	if strings.Contains(contentStr, "def ") && strings.Contains(contentStr, "):") {
		return langPython
	}
	if strings.Contains(contentStr, "__name__") || strings.Contains(contentStr, "__main__") {
		return langPython
	}
	return ""
}

func detectHTML(trimmed []byte) string {
	lowerTrimmed := bytes.ToLower(trimmed)
	if bytes.Contains(lowerTrimmed, []byte("<!doctype html")) ||
		bytes.Contains(lowerTrimmed, []byte("<html")) ||
		bytes.Contains(lowerTrimmed, []byte("<body>")) {
		return langHTML
	}
	return ""
}

func detectJSON(trimmed []byte) string {
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) &&
		!bytes.Contains(trimmed, []byte(";")) {
		return langJSON
	}
	return ""
}

func detectSQL(contentStr string) string {
	trimmedUpper := strings.ToUpper(strings.TrimSpace(contentStr))
	for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "CREATE "} {
		if strings.HasPrefix(trimmedUpper, kw) {
			return langSQL
		}
	}
	return ""
}

// jsMarkers are fragments that rarely appear outside JavaScript.
//
//nolint:gochecknoglobals // Read-only lookup table.
var jsMarkers = []string{
	"function ", "function(", "var ", "=>", "const ", "let ",
	"console.log", "require(", "module.exports", "document.", "===",
}

func detectJavaScript(contentStr string) string {
	for _, marker := range jsMarkers {
		if strings.Contains(contentStr, marker) {
			return JavaScript
		}
	}
	return ""
}

// detectYAML checks for YAML patterns by counting key: value pairs.
func detectYAML(content []byte) string {
	yamlKeyCount := 0

	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.Contains(line, []byte("(")) &&
			!bytes.Contains(line, []byte("{")) &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			yamlKeyCount++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			yamlKeyCount++
		}
	}

	if yamlKeyCount >= 2 {
		return langYAML
	}
	return ""
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ReplaceAll(strings.ToLower(lang), " ", "-")
}
