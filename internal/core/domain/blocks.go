package domain

import (
	"fmt"
	"strings"
)

// BlockLabel names a styled block the editor can wrap text in.
type BlockLabel string

// Styled block labels. Each maps to a CSS class in the rendered page.
const (
	BlockDefinition BlockLabel = "definition"
	BlockTheory     BlockLabel = "theory"
	BlockNote       BlockLabel = "note"
	BlockFormula    BlockLabel = "formula"
	BlockWarning    BlockLabel = "warning"
)

// BlockPlaceholder is the content of a block inserted without a selection.
const BlockPlaceholder = "Your content here"

// BlockLabels returns all styled block labels in toolbar order.
func BlockLabels() []BlockLabel {
	return []BlockLabel{BlockDefinition, BlockTheory, BlockNote, BlockFormula, BlockWarning}
}

// ParseBlockLabel converts s to a BlockLabel.
func ParseBlockLabel(s string) (BlockLabel, error) {
	l := BlockLabel(strings.ToLower(strings.TrimSpace(s)))
	if !l.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownBlock, s)
	}
	return l, nil
}

// IsValid returns true if the label is recognised.
func (l BlockLabel) IsValid() bool {
	switch l {
	case BlockDefinition, BlockTheory, BlockNote, BlockFormula, BlockWarning:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (l BlockLabel) String() string {
	return string(l)
}

// Title returns the label as shown on toolbar buttons and quote headings.
func (l BlockLabel) Title() string {
	if l == "" {
		return ""
	}
	return strings.ToUpper(string(l[:1])) + string(l[1:])
}

// Open returns the opening marker, including the surrounding newlines.
func (l BlockLabel) Open() string {
	return "\n<div class=\"" + string(l) + "\">\n"
}

// Close returns the closing marker, including the surrounding newlines.
func (l BlockLabel) Close() string {
	return "\n</div>\n"
}

// EmptyBlock returns a complete block holding BlockPlaceholder.
func EmptyBlock(l BlockLabel) string {
	return l.Open() + BlockPlaceholder + l.Close()
}
