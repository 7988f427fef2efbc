package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Dimensions is the terminal surface available for composition. It is owned
// by the root composer and updated only on a resize event; components read
// sizes through SetSize and never mutate it.
type Dimensions struct {
	Width  int
	Height int
}

// Axis selects the direction sections are stacked in.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

// sizingKind discriminates SizingRule values.
type sizingKind int

const (
	sizeFixed sizingKind = iota
	sizeIntrinsic
	sizeRemainder
)

// SizingRule declares how much of the axis a section claims.
//
// Remainder is the load-bearing rule: its extent is always derived as
// available minus the measured extents of its siblings, never written as a
// literal. Hard-coding "height-1-1" style arithmetic drifts out of sync the
// moment a sibling grows a border; deriving it cannot.
type SizingRule struct {
	kind sizingKind
	n    int
}

// Fixed claims exactly n cells on the axis.
func Fixed(n int) SizingRule { return SizingRule{kind: sizeFixed, n: n} }

// Intrinsic claims whatever the section's rendered content measures.
func Intrinsic() SizingRule { return SizingRule{kind: sizeIntrinsic} }

// Remainder claims the space left after Fixed and Intrinsic siblings.
// Multiple Remainder sections split the leftover evenly, first section
// taking any odd cell.
func Remainder() SizingRule { return SizingRule{kind: sizeRemainder} }

// Section pairs a rendered block with its sizing rule.
type Section struct {
	Content string
	Rule    SizingRule
}

// Compose lays out sections along axis within available and joins them into
// one block of exactly available.Width x available.Height cells. It is a pure
// function: no component state is read, and the same inputs always produce
// the same output.
func Compose(axis Axis, available Dimensions, sections ...Section) string {
	if available.Width <= 0 || available.Height <= 0 || len(sections) == 0 {
		return ""
	}

	total := available.Height
	if axis == Horizontal {
		total = available.Width
	}

	// First pass: measure fixed and intrinsic extents.
	extents := make([]int, len(sections))
	remainders := 0
	claimed := 0
	for i, s := range sections {
		switch s.Rule.kind {
		case sizeFixed:
			extents[i] = max(s.Rule.n, 0)
		case sizeIntrinsic:
			extents[i] = measure(axis, s.Content)
		case sizeRemainder:
			remainders++
			continue
		}
		claimed += extents[i]
	}

	// Second pass: the remainder extent is derived, never hard-coded.
	leftover := max(total-claimed, 0)
	for i, s := range sections {
		if s.Rule.kind != sizeRemainder {
			continue
		}
		share := leftover / remainders
		if leftover%remainders != 0 {
			share++ // first remainder takes the odd cell
		}
		extents[i] = share
		leftover -= share
		remainders--
	}

	// Third pass: force each section to its exact rectangle and join.
	blocks := make([]string, 0, len(sections))
	for i, s := range sections {
		if extents[i] <= 0 {
			continue
		}
		w, h := available.Width, extents[i]
		if axis == Horizontal {
			w, h = extents[i], available.Height
		}
		blocks = append(blocks, fit(s.Content, w, h))
	}

	if axis == Horizontal {
		return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// measure returns a block's intrinsic extent along axis.
func measure(axis Axis, content string) int {
	if axis == Horizontal {
		return lipgloss.Width(content)
	}
	return lipgloss.Height(content)
}

// fit clips and pads content to exactly width x height cells.
func fit(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, strings.Join(lines, "\n"))
}

// ClipWidth truncates each line of content to maxWidth, ANSI-aware. Callers
// clip before rendering into a fixed rectangle to prevent overflow.
func ClipWidth(content string, maxWidth int) string {
	if maxWidth <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > maxWidth {
			lines[i] = ansi.Truncate(line, maxWidth, "…")
		}
	}
	return strings.Join(lines, "\n")
}
