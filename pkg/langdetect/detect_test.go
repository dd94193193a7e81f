package langdetect_test

import (
	"testing"

	"github.com/yaklabco/docweave/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{name: "shebang bash", content: "#!/bin/bash\necho hello", expected: "bash"},
		{name: "shebang python", content: "#!/usr/bin/env python3\nprint('hello')", expected: "python"},
		{name: "shebang wins over patterns", content: "#!/bin/bash\ndef foo():\n    pass", expected: "bash"},
		{name: "go code", content: "package main\n\nfunc main() {}", expected: "go"},
		{name: "python code", content: "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()", expected: "python"},
		{name: "javascript code", content: "const x = () => 42;\nconsole.log(x());", expected: "javascript"},
		{name: "json object", content: `{"key": "value", "number": 123}`, expected: "json"},
		{name: "yaml content", content: "key: value\nother: 123\nlist:\n  - item1\n  - item2", expected: "yaml"},
		{name: "rust code", content: "fn main() {\n    println!(\"Hello\");\n}", expected: "rust"},
		{name: "sql query", content: "SELECT * FROM users WHERE id = 1;", expected: "sql"},
		{name: "html", content: "<!DOCTYPE html>\n<html><body></body></html>", expected: "html"},
		{name: "dockerfile", content: "FROM golang:1.25\nWORKDIR /app\nCOPY . .", expected: "dockerfile"},
		{name: "plain text", content: "just some text without any code patterns", expected: "text"},
		{name: "blank", content: "  \n", expected: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := langdetect.Detect(tt.content); got != tt.expected {
				t.Errorf("Detect() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{name: "py", want: "python"},
		{name: "pyw", want: "python"},
		{name: "kt", want: "kotlin"},
		{name: "h", want: "h"},
		{name: "Python", want: "python"},
		{name: "golang", want: "go"},
		{name: "sh", want: "bash"},
		{name: "  ", want: ""},
		{name: "my-dsl", want: "my-dsl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := langdetect.Language(tt.name); got != tt.want {
				t.Errorf("Language(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func BenchmarkDetect(b *testing.B) {
	code := "def hello():\n    print(\"Hello\")\n\nif __name__ == \"__main__\":\n    hello()"
	for range b.N {
		langdetect.Detect(code)
	}
}
