package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/jslex/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "shebang node",
			content:  "#!/usr/bin/env node\nprocess.exit(0)",
			expected: "javascript",
		},
		{
			name:     "shebang sh",
			content:  "#!/bin/sh\necho hello",
			expected: "bash",
		},
		{
			name:     "go code",
			content:  "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}",
			expected: "go",
		},
		{
			name:     "python code",
			content:  "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()",
			expected: "python",
		},
		{
			name:     "es5 function",
			content:  "function add(a, b) {\n  return a + b;\n}",
			expected: "javascript",
		},
		{
			name:     "arrow function",
			content:  "const x = () => { return 42; };\nconsole.log(x());",
			expected: "javascript",
		},
		{
			name:     "json object",
			content:  `{"key": "value", "number": 123}`,
			expected: "json",
		},
		{
			name:     "yaml content",
			content:  "key: value\nother: 123\nlist:\n  - item1\n  - item2",
			expected: "yaml",
		},
		{
			name:     "sql query",
			content:  "SELECT * FROM users WHERE id = 1;",
			expected: "sql",
		},
		{
			name:     "html content",
			content:  "<!DOCTYPE html>\n<html>\n<body></body>\n</html>",
			expected: "html",
		},
		{
			name:     "plain text fallback",
			content:  "just some text without any code patterns",
			expected: "text",
		},
		{
			name:     "blank content fallback",
			content:  " \n\t",
			expected: "text",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, langdetect.Detect([]byte(testCase.content)))
		})
	}
}

func TestDetect_ShebangTakesPrecedence(t *testing.T) {
	t.Parallel()

	// Looks like Python, runs under sh.
	content := []byte("#!/bin/sh\ndef foo():\n    pass")
	assert.Equal(t, "bash", langdetect.Detect(content))
}

func TestLooksLikeJavaScript(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.LooksLikeJavaScript([]byte("var a = 1;")))
	assert.False(t, langdetect.LooksLikeJavaScript([]byte("package main")))
}

func TestFromInfoString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		info     string
		expected string
	}{
		{info: "js", expected: "javascript"},
		{info: "JavaScript", expected: "javascript"},
		{info: "javascript title=app.js", expected: "javascript"},
		{info: "{.js}", expected: "javascript"},
		{info: "node", expected: "javascript"},
		{info: "go", expected: "go"},
		{info: "", expected: ""},
		{info: "definitely-not-a-language", expected: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.info, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, langdetect.FromInfoString(testCase.info))
		})
	}
}

func TestIsJavaScript(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsJavaScript("js"))
	assert.True(t, langdetect.IsJavaScript("es5 linenums", "ES5"))
	assert.False(t, langdetect.IsJavaScript("es5"))
	assert.False(t, langdetect.IsJavaScript("", "es5"))
	assert.False(t, langdetect.IsJavaScript("python", "es5"))
}

func TestFromFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "javascript", langdetect.FromFilename("src/app.js", nil))
	assert.Equal(t, "javascript", langdetect.FromFilename("bin/tool", []byte("#!/usr/bin/env node\n")))
	assert.Empty(t, langdetect.FromFilename("README", []byte("hello")))
}
