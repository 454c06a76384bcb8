package checks

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	canonicalIndentConstant         = "  "
	diffContextLinesConstant        = 3
	trailingNewlineConstant         = "\n"
	sortKeyFallbackTemplateConstant = "%v"
)

// CanonicalJSON renders a value as deterministic indented JSON: object keys
// are sorted and array elements are ordered by their own canonical rendering,
// so two structurally equal values always produce identical text.
func CanonicalJSON(value any) (string, error) {
	encodedValue, encodingError := json.Marshal(value)
	if encodingError != nil {
		return "", encodingError
	}

	var decodedValue any
	decodingError := json.Unmarshal(encodedValue, &decodedValue)
	if decodingError != nil {
		return "", decodingError
	}

	normalizedValue := normalizeValue(decodedValue)

	indentedValue, indentError := json.MarshalIndent(normalizedValue, "", canonicalIndentConstant)
	if indentError != nil {
		return "", indentError
	}

	return string(indentedValue) + trailingNewlineConstant, nil
}

// UnifiedDiff computes a unified textual difference between two canonical
// renderings. An empty string means the renderings are identical.
func UnifiedDiff(currentText string, desiredText string, currentLabel string, desiredLabel string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(currentText),
		B:        difflib.SplitLines(desiredText),
		FromFile: currentLabel,
		ToFile:   desiredLabel,
		Context:  diffContextLinesConstant,
	})
}

func normalizeValue(value any) any {
	switch typedValue := value.(type) {
	case map[string]any:
		normalizedMap := make(map[string]any, len(typedValue))
		for entryKey, entryValue := range typedValue {
			normalizedMap[entryKey] = normalizeValue(entryValue)
		}
		return normalizedMap
	case []any:
		normalizedSlice := make([]any, len(typedValue))
		for entryIndex, entryValue := range typedValue {
			normalizedSlice[entryIndex] = normalizeValue(entryValue)
		}
		sort.SliceStable(normalizedSlice, func(firstIndex int, secondIndex int) bool {
			return elementSortKey(normalizedSlice[firstIndex]) < elementSortKey(normalizedSlice[secondIndex])
		})
		return normalizedSlice
	default:
		return value
	}
}

func elementSortKey(value any) string {
	encodedValue, encodingError := json.Marshal(value)
	if encodingError != nil {
		return fmt.Sprintf(sortKeyFallbackTemplateConstant, value)
	}
	return string(encodedValue)
}
