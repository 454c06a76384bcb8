package phpstan

import (
	"errors"
	"strings"
)

const (
	pathsSectionKeyConstant            = "paths:"
	excludePathsSectionKeyConstant     = "excludePaths:"
	listItemPrefixConstant             = "- "
	defaultItemIndentSuffixConstant    = "\t"
	lineSeparatorConstant              = "\n"
	pathsSectionMissingMessageConstant = "configuration has no parameters.paths section"
)

// ErrPathsSectionMissing indicates the NEON file carries no paths section to rewrite.
var ErrPathsSectionMissing = errors.New(pathsSectionMissingMessageConstant)

// RewritePathSections replaces the parameters.paths and parameters.excludePaths
// list items with the provided entries, preserving every other line verbatim.
// An empty exclude list removes the excludePaths block; a missing excludePaths
// block is inserted after the paths block when exclude entries exist.
func RewritePathSections(content string, scanDirectories []string, excludeDirectories []string) (string, error) {
	lines := splitLines(content)

	pathsSection, pathsFound := locateSection(lines, pathsSectionKeyConstant)
	if !pathsFound {
		return "", ErrPathsSectionMissing
	}

	rewritten := replaceSectionItems(lines, pathsSection, scanDirectories)

	excludeSection, excludeFound := locateSection(rewritten, excludePathsSectionKeyConstant)
	switch {
	case excludeFound && len(excludeDirectories) == 0:
		rewritten = removeSection(rewritten, excludeSection)
	case excludeFound:
		rewritten = replaceSectionItems(rewritten, excludeSection, excludeDirectories)
	case len(excludeDirectories) > 0:
		rewritten = insertExcludeSection(rewritten, excludeDirectories)
	}

	return strings.Join(rewritten, lineSeparatorConstant), nil
}

type sectionBounds struct {
	keyLine    int
	firstItem  int
	afterItems int
	keyIndent  string
	itemIndent string
}

func splitLines(content string) []string {
	return strings.Split(content, lineSeparatorConstant)
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func locateSection(lines []string, sectionKey string) (sectionBounds, bool) {
	for lineIndex, line := range lines {
		if strings.TrimSpace(line) != sectionKey {
			continue
		}

		bounds := sectionBounds{
			keyLine:    lineIndex,
			firstItem:  lineIndex + 1,
			keyIndent:  leadingWhitespace(line),
			itemIndent: leadingWhitespace(line) + defaultItemIndentSuffixConstant,
		}

		afterItems := lineIndex + 1
		for afterItems < len(lines) {
			candidate := lines[afterItems]
			trimmedCandidate := strings.TrimSpace(candidate)
			if len(trimmedCandidate) == 0 {
				break
			}
			candidateIndent := leadingWhitespace(candidate)
			if len(candidateIndent) <= len(bounds.keyIndent) {
				break
			}
			if afterItems == bounds.firstItem {
				bounds.itemIndent = candidateIndent
			}
			afterItems++
		}
		bounds.afterItems = afterItems

		return bounds, true
	}

	return sectionBounds{}, false
}

func renderSectionItems(itemIndent string, entries []string) []string {
	itemLines := make([]string, 0, len(entries))
	for _, entry := range entries {
		itemLines = append(itemLines, itemIndent+listItemPrefixConstant+entry)
	}
	return itemLines
}

func replaceSectionItems(lines []string, bounds sectionBounds, entries []string) []string {
	replacement := make([]string, 0, len(lines))
	replacement = append(replacement, lines[:bounds.firstItem]...)
	replacement = append(replacement, renderSectionItems(bounds.itemIndent, entries)...)
	replacement = append(replacement, lines[bounds.afterItems:]...)
	return replacement
}

func removeSection(lines []string, bounds sectionBounds) []string {
	remaining := make([]string, 0, len(lines))
	remaining = append(remaining, lines[:bounds.keyLine]...)
	remaining = append(remaining, lines[bounds.afterItems:]...)
	return remaining
}

func insertExcludeSection(lines []string, excludeDirectories []string) []string {
	pathsSection, pathsFound := locateSection(lines, pathsSectionKeyConstant)
	if !pathsFound {
		return lines
	}

	sectionLines := make([]string, 0, len(excludeDirectories)+1)
	sectionLines = append(sectionLines, pathsSection.keyIndent+excludePathsSectionKeyConstant)
	sectionLines = append(sectionLines, renderSectionItems(pathsSection.itemIndent, excludeDirectories)...)

	inserted := make([]string, 0, len(lines)+len(sectionLines))
	inserted = append(inserted, lines[:pathsSection.afterItems]...)
	inserted = append(inserted, sectionLines...)
	inserted = append(inserted, lines[pathsSection.afterItems:]...)
	return inserted
}
