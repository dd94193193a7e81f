// Package langdetect names the languages of code blocks.
//
// Authors may give a language in any of the aliases linguist knows ("py",
// "golang", "sh"); Language maps them to one canonical name so renderers can
// pick a highlighter. Code blocks without a language are classified with
// go-enry, after a few cheap pattern checks for the most common cases.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is the language of code that could not be classified.
const Text = "text"

// classifierCandidates restricts the classifier to languages commonly
// found in documentation.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Language returns the canonical name for a language name or alias given
// in a document. Names that are not aliases are tried as file extensions
// ("py", "kt"); an extension shared by several languages is not resolved.
// Names linguist does not know are lowercased.
func Language(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if lang, ok := enry.GetLanguageByAlias(name); ok {
		return normalize(lang)
	}
	if !strings.Contains(name, ".") {
		if langs := enry.GetLanguagesByExtension("code."+name, nil, nil); len(langs) == 1 {
			return normalize(langs[0])
		}
	}
	return strings.ToLower(name)
}

// Detect guesses the language of code. It returns Text when no guess is
// confident.
func Detect(code string) string {
	if strings.TrimSpace(code) == "" {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang([]byte(code)); safe {
		return normalize(lang)
	}

	for _, p := range patterns {
		if p.match(code, strings.TrimSpace(code)) {
			return p.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier([]byte(code), classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}
	return Text
}

// pattern is a cheap, highly indicative check tried before the classifier.
type pattern struct {
	lang  string
	match func(code, trimmed string) bool
}

// patterns are checked in order of specificity.
var patterns = []pattern{
	{lang: "go", match: func(_, trimmed string) bool {
		return strings.HasPrefix(trimmed, "package ")
	}},
	{lang: "python", match: func(code, _ string) bool {
		if strings.Contains(code, "def ") && strings.Contains(code, "):") {
			return true
		}
		return strings.Contains(code, "__name__") || strings.Contains(code, "__main__")
	}},
	{lang: "html", match: func(_, trimmed string) bool {
		lower := strings.ToLower(trimmed)
		return containsAny(lower, "<!doctype html", "<html", "<head>", "<body>")
	}},
	{lang: "json", match: func(_, trimmed string) bool {
		return (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) && strings.Contains(trimmed, `"`)
	}},
	{lang: "dockerfile", match: func(code, trimmed string) bool {
		return strings.HasPrefix(trimmed, "FROM ") ||
			(strings.Contains(code, "WORKDIR ") && strings.Contains(code, "COPY "))
	}},
	{lang: "sql", match: func(_, trimmed string) bool {
		upper := strings.ToUpper(trimmed)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{lang: "rust", match: func(code, _ string) bool {
		return containsAny(code, "fn main()", "println!", "let mut ")
	}},
	{lang: "javascript", match: func(code, _ string) bool {
		return containsAny(code, "=>", "const ", "console.log")
	}},
	{lang: "yaml", match: func(code, _ string) bool {
		return yamlKeys(code) >= 2
	}},
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// yamlKeys counts lines that look like YAML keys or list items.
func yamlKeys(code string) int {
	count := 0
	for line := range strings.Lines(code) {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
		case strings.HasPrefix(line, "- "):
			count++
		case strings.Contains(line, ": ") && !strings.ContainsAny(line, "({") && !strings.HasPrefix(line, `"`):
			count++
		}
	}
	return count
}

// normalize converts linguist language names to lowercase fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
