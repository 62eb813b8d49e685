package claude

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTrimOutput_EmptyInput(t *testing.T) {
	assert.Equal(t, "", TrimOutput("", DefaultTrimOptions()))
}

func TestTrimOutput_NoLimits(t *testing.T) {
	input := "line1\nline2\nline3"
	assert.Equal(t, input, TrimOutput(input, TrimOptions{}))
}

func TestTrimOutput_MaxLinesPreservesTail(t *testing.T) {
	input := "line1\nline2\nline3\nline4\nline5"
	result := TrimOutput(input, TrimOptions{MaxLines: 3})

	assert.True(t, strings.HasPrefix(result, TruncationMarker))
	assert.Contains(t, result, "line3\nline4\nline5")
	assert.NotContains(t, result, "line2")
}

func TestTrimOutput_MaxBytesPreservesTail(t *testing.T) {
	input := strings.Repeat("A", 100) + "\n" + strings.Repeat("B", 100) + "\n" + strings.Repeat("C", 100)
	result := TrimOutput(input, TrimOptions{MaxBytes: 150})

	assert.True(t, strings.HasSuffix(result, strings.Repeat("C", 100)))
	assert.LessOrEqual(t, len(result), 150)
	assert.True(t, strings.HasPrefix(result, TruncationMarker))
}

func TestTrimOutput_BothLimitsSingleMarker(t *testing.T) {
	input := strings.Repeat("0123456789\n", 100)
	result := TrimOutput(input, TrimOptions{MaxLines: 50, MaxBytes: 100})

	assert.Equal(t, 1, strings.Count(result, TruncationMarker))
	assert.LessOrEqual(t, len(result), 100)
}

func TestTrimOutput_KeepsValidUTF8(t *testing.T) {
	input := strings.Repeat("é", 200)
	result := TrimOutput(input, TrimOptions{MaxBytes: 101})

	assert.True(t, utf8.ValidString(result))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "", Preview("abc", 0))
	assert.Equal(t, "abc", Preview("abc", 10))
	assert.Equal(t, "ab", Preview("abc", 2))
	assert.Equal(t, "日本", Preview("日本語", 2))
}
