package mdscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsGenuineLink_InlineCode(t *testing.T) {
	// Inside inline code: odd number of backticks before the match.
	assert.False(t, IsGenuineLink("foo", "bar", "Call `[foo](bar)` here"))

	// Backticks elsewhere on the line do not disqualify the link.
	assert.True(t, IsGenuineLink("foo", "bar.md", "Use `x` then see [foo](bar.md)"))

	assert.True(t, IsGenuineLink("foo", "bar.md", "[foo](bar.md)"))
}

func TestIsGenuineLink_Prefixes(t *testing.T) {
	for _, url := range []string{
		"https://example.com",
		"http://example.com",
		"ftp://host/file",
		"mailto:a@b.c",
		"#section",
		"./sibling",
		"../parent",
		"/absolute",
	} {
		assert.True(t, IsGenuineLink("x", url, "[x]("+url+")"), url)
	}
}

func TestIsGenuineLink_Extensions(t *testing.T) {
	for _, url := range []string{"guide.md", "page.html", "spec.pdf", "notes.txt", "pic.png"} {
		assert.True(t, IsGenuineLink("x", url, "[x]("+url+")"), url)
	}
}

func TestIsGenuineLink_PathSeparators(t *testing.T) {
	assert.True(t, IsGenuineLink("x", "docs/guide", "[x](docs/guide)"))
	assert.True(t, IsGenuineLink("x", `docs\guide`, `[x](docs\guide)`))
}

func TestIsGenuineLink_CodeShapes(t *testing.T) {
	// Function-call arguments: spaces plus commas or several tokens.
	assert.False(t, IsGenuineLink("arr", "a, b", "sort[arr](a, b)"))
	assert.False(t, IsGenuineLink("arr", "one two three", "f[arr](one two three)"))

	assert.False(t, IsGenuineLink("i", "int x", "[i](int x)"))
	assert.False(t, IsGenuineLink("f", "call(1)", "[f](call(1)"))
	assert.False(t, IsGenuineLink("s", "std::vector", "[s](std::vector)"))
	assert.False(t, IsGenuineLink("p", "ptr*", "[p](ptr*)"))
}

func TestIsGenuineLink_DefaultAccept(t *testing.T) {
	assert.True(t, IsGenuineLink("word", "glossary", "[word](glossary)"))
}
