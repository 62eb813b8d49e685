package claude

import (
	"strings"
	"unicode/utf8"
)

// TruncationMarker is the marker added when output is truncated.
const TruncationMarker = "... [output truncated]"

// Default limits for stderr shown in error messages.
const (
	DefaultMaxLines = 20
	DefaultMaxBytes = 2048
)

// TrimOptions configures output trimming behavior.
type TrimOptions struct {
	// MaxLines is the maximum number of lines to keep.
	// If 0, no line limit is applied.
	MaxLines int

	// MaxBytes is the maximum output size in bytes.
	// If 0, no byte limit is applied.
	MaxBytes int
}

// DefaultTrimOptions returns the limits used for stderr in errors.
func DefaultTrimOptions() TrimOptions {
	return TrimOptions{
		MaxLines: DefaultMaxLines,
		MaxBytes: DefaultMaxBytes,
	}
}

// TrimOutput trims process output to fit within the limits, keeping the tail
// where CLI tools print their final error. A marker is prepended when trimmed.
func TrimOutput(output string, opts TrimOptions) string {
	if output == "" {
		return ""
	}

	if opts.MaxLines <= 0 && opts.MaxBytes <= 0 {
		return output
	}

	result := output

	if opts.MaxLines > 0 {
		result = trimToMaxLines(result, opts.MaxLines)
	}

	if opts.MaxBytes > 0 {
		result = trimToMaxBytes(result, opts.MaxBytes)
	}

	return result
}

func trimToMaxLines(output string, maxLines int) string {
	lines := strings.Split(output, "\n")
	if len(lines) <= maxLines {
		return output
	}

	return TruncationMarker + "\n" + strings.Join(lines[len(lines)-maxLines:], "\n")
}

func trimToMaxBytes(output string, maxBytes int) string {
	if len(output) <= maxBytes {
		return output
	}

	contentBytes := maxBytes - len(TruncationMarker) - 1
	if contentBytes <= 0 {
		return TruncationMarker
	}

	body := strings.TrimPrefix(output, TruncationMarker+"\n")
	start := max(len(body)-contentBytes, 0)
	for start < len(body) && !utf8.RuneStart(body[start]) {
		start++
	}

	return TruncationMarker + "\n" + body[start:]
}

// Preview returns at most limit runes from the start of s.
func Preview(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
