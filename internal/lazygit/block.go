// Package lazygit manages the claude-lazygit custom command inside lazygit's config.yml.
//
// The editor works on the raw text of the file instead of a YAML tree so that
// comments, ordering and formatting of everything it does not own survive an
// install or uninstall untouched.
package lazygit

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// Sentinel identifies the managed custom command among other entries.
const Sentinel = "claude-lazygit"

// SectionKey is the top-level key holding lazygit custom commands.
const SectionKey = "customCommands"

// ErrInlineSection indicates the section key carries an inline flow value
// (e.g. `customCommands: [{...}]`) that cannot be edited line by line.
var ErrInlineSection = errors.New("customCommands uses inline flow syntax")

// IndentFunc returns the indentation depth of a line.
type IndentFunc func(line string) int

// LeadingWhitespace counts leading spaces and tabs, one column each.
func LeadingWhitespace(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// sequenceItem matches a YAML sequence entry at any depth.
var sequenceItem = regexp.MustCompile(`^[ \t]*-([ \t]|$)`)

// multiBlank matches runs of two or more blank lines, LF or CRLF.
var multiBlank = regexp.MustCompile(`(?:\r?\n){3,}`)

// defaultItemIndent indents entries of a section that has none yet.
const defaultItemIndent = "  "

// Block is the location of a managed block within a document's lines.
type Block struct {
	Present bool
	// Start is the index of the sequence item line.
	Start int
	// End is the exclusive end index; trailing blank lines are not included.
	End int
}

// Editor locates, removes and inserts the managed block.
type Editor struct {
	// Sentinel is the substring marking a block as managed.
	Sentinel string
	// Section is the top-level key the block is inserted under.
	Section string
	// Item matches the first line of a candidate block.
	Item *regexp.Regexp
	// Indent measures line depth.
	Indent IndentFunc
}

// NewEditor creates an Editor for the claude-lazygit block.
func NewEditor() *Editor {
	return &Editor{
		Sentinel: Sentinel,
		Section:  SectionKey,
		Item:     sequenceItem,
		Indent:   LeadingWhitespace,
	}
}

type scanState int

const (
	stateOutside scanState = iota
	stateInBlock
)

// scan returns every managed block in lines, in order. Only entries of the
// section are candidates; lists elsewhere in the document are never touched.
func (e *Editor) scan(lines []string) []Block {
	var blocks []Block
	for i, line := range lines {
		if e.isSection(line) {
			blocks = append(blocks, e.scanRange(lines, i+1, e.sectionEnd(lines, i))...)
		}
	}
	return blocks
}

// scanRange finds managed blocks in lines[from:to]. A candidate block starts
// at a sequence item of depth d and extends over blank lines and lines deeper
// than d. Items nested inside a candidate are part of it and never evaluated
// on their own.
func (e *Editor) scanRange(lines []string, from, to int) []Block {
	var blocks []Block

	state := stateOutside
	var cur Block
	depth := 0
	managed := false

	closeBlock := func() {
		if managed {
			blocks = append(blocks, cur)
		}
		state = stateOutside
	}

	for i := from; i < to; i++ {
		line := lines[i]
		if state == stateInBlock {
			switch {
			case isBlank(line):
				continue
			case e.Indent(line) > depth:
				cur.End = i + 1
				if strings.Contains(line, e.Sentinel) {
					managed = true
				}
				continue
			default:
				closeBlock()
			}
		}

		if e.Item.MatchString(line) {
			state = stateInBlock
			depth = e.Indent(line)
			cur = Block{Present: true, Start: i, End: i + 1}
			managed = strings.Contains(line, e.Sentinel)
		}
	}

	if state == stateInBlock {
		closeBlock()
	}

	return blocks
}

// sectionEnd returns the exclusive end of the section body starting at idx:
// the first line at the key's depth or shallower that is not a sequence item.
// Blank and comment lines never end the body.
func (e *Editor) sectionEnd(lines []string, idx int) int {
	depth := e.Indent(lines[idx])
	for j := idx + 1; j < len(lines); j++ {
		line := lines[j]
		if isBlank(line) || isComment(line) {
			continue
		}
		d := e.Indent(line)
		if d > depth || (d == depth && e.Item.MatchString(line)) {
			continue
		}
		return j
	}
	return len(lines)
}

// itemPrefix returns the leading whitespace of the first entry of the section
// at idx, or the default indent when the section has no entries.
func (e *Editor) itemPrefix(lines []string, idx int) string {
	end := e.sectionEnd(lines, idx)
	for j := idx + 1; j < end; j++ {
		line := lines[j]
		if isBlank(line) || isComment(line) {
			continue
		}
		if e.Item.MatchString(line) {
			return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		}
		break
	}
	return defaultItemIndent
}

// Locate returns the first managed block in lines.
func (e *Editor) Locate(lines []string) Block {
	blocks := e.scan(lines)
	if len(blocks) == 0 {
		return Block{}
	}
	return blocks[0]
}

// Contains reports whether text holds a managed block.
func (e *Editor) Contains(text string) bool {
	return e.Locate(splitLines(text)).Present
}

// Remove excises every managed block from text. When something is removed,
// blank-line runs are collapsed, a section left empty by the removal is
// dropped, and the result ends with a single newline. Text without a managed
// block is returned unchanged.
func (e *Editor) Remove(text string) string {
	kept, removed := e.excise(splitLines(text), true)
	if removed == 0 {
		return text
	}
	return normalize(kept)
}

// Upsert replaces any managed block in text with block, inserted directly
// under the section key at the indentation of the existing entries. The
// section is appended when missing. CRLF documents keep CRLF line endings.
func (e *Editor) Upsert(text, block string) (string, error) {
	if kept, removed := e.excise(splitLines(text), false); removed > 0 {
		text = normalize(kept)
	}

	eol := ""
	if strings.Contains(text, "\r\n") {
		eol = "\r"
	}
	lines := splitLines(text)

	for i, line := range lines {
		if !e.isSection(line) {
			continue
		}

		header, err := e.sectionHeader(line)
		if err != nil {
			return "", err
		}
		blockLines := reindent(block, e.itemPrefix(lines, i), eol)

		out := make([]string, 0, len(lines)+len(blockLines))
		out = append(out, lines[:i]...)
		out = append(out, header+eol)
		out = append(out, blockLines...)
		out = append(out, lines[i+1:]...)

		result := strings.Join(out, "\n")
		if !strings.HasSuffix(result, "\n") {
			result += eol + "\n"
		}
		return result, nil
	}

	blockLines := reindent(block, defaultItemIndent, eol)
	section := e.Section + ":" + eol + "\n" + strings.Join(blockLines, "\n") + "\n"
	if strings.TrimSpace(text) == "" {
		return section, nil
	}
	nl := eol + "\n"
	return strings.TrimRight(text, " \t\r\n") + nl + nl + section, nil
}

// reindent strips the common indentation of block, prefixes every line with
// prefix and terminates it with eol.
func reindent(block, prefix, eol string) []string {
	lines := splitLines(strings.TrimRight(block, "\r\n"))

	common := -1
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		if d := LeadingWhitespace(line); common < 0 || d < common {
			common = d
		}
	}
	if common < 0 {
		common = 0
	}

	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if isBlank(line) {
			lines[i] = eol
			continue
		}
		lines[i] = prefix + line[common:] + eol
	}
	return lines
}

// excise drops managed block lines. With dropEmptied, a section key whose
// entries were all removed is dropped too.
func (e *Editor) excise(lines []string, dropEmptied bool) ([]string, int) {
	blocks := e.scan(lines)
	if len(blocks) == 0 {
		return lines, 0
	}

	drop := make([]bool, len(lines))
	for _, b := range blocks {
		for i := b.Start; i < b.End; i++ {
			drop[i] = true
		}
	}

	if dropEmptied {
		for i, line := range lines {
			if e.isSection(line) && !e.sectionEmpty(lines, i, nil) && e.sectionEmpty(lines, i, drop) {
				drop[i] = true
			}
		}
	}

	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		if !drop[i] {
			kept = append(kept, line)
		}
	}
	return kept, len(blocks)
}

// isSection reports whether line is the top-level section key.
func (e *Editor) isSection(line string) bool {
	rest, ok := strings.CutPrefix(line, e.Section+":")
	if !ok {
		return false
	}
	return rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\r'
}

// sectionHeader returns the line to keep as section key, rewriting an empty
// inline list to block form.
func (e *Editor) sectionHeader(line string) (string, error) {
	value := strings.TrimSpace(strings.TrimPrefix(line, e.Section+":"))
	if idx := strings.Index(value, "#"); idx >= 0 && (idx == 0 || value[idx-1] == ' ' || value[idx-1] == '\t') {
		value = strings.TrimSpace(value[:idx])
	}

	switch value {
	case "":
		return strings.TrimRight(line, "\r"), nil
	case "[]", "~", "null":
		return e.Section + ":", nil
	default:
		return "", errors.WithHint(ErrInlineSection,
			"Rewrite customCommands as a block sequence (one '- key: ...' entry per line) and retry.")
	}
}

// sectionEmpty reports whether the section starting at idx has no entries,
// ignoring lines marked in drop.
func (e *Editor) sectionEmpty(lines []string, idx int, drop []bool) bool {
	depth := e.Indent(lines[idx])
	for j := idx + 1; j < len(lines); j++ {
		if (drop != nil && drop[j]) || isBlank(lines[j]) {
			continue
		}
		d := e.Indent(lines[j])
		if d > depth {
			return false
		}
		// Sequences may sit at the same depth as their key.
		return !(d == depth && e.Item.MatchString(lines[j]))
	}
	return true
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

// normalize joins lines, collapses blank-line runs and ends the document
// with exactly one line ending. Leading newlines are dropped and
// whitespace-only documents become empty. CRLF documents stay CRLF.
func normalize(lines []string) string {
	text := strings.Join(lines, "\n")
	nl := "\n"
	if strings.Contains(text, "\r\n") {
		nl = "\r\n"
	}

	text = multiBlank.ReplaceAllString(text, nl+nl)
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return strings.Trim(text, "\r\n") + nl
}
