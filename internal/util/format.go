package util

import "fmt"

// Placeholder is shown for missing values.
const Placeholder = "N/A"

// DisplayValue returns s, or the placeholder when s is empty.
func DisplayValue(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// FormatPageInfo formats the "Page X of Y" label.
func FormatPageInfo(current, total int) string {
	return fmt.Sprintf("Page %d of %d", current, total)
}

// FormatPageSize formats a page size option.
func FormatPageSize(size int) string {
	return fmt.Sprintf("%d per page", size)
}

// FormatRange formats the rows shown on the current page, e.g. "11-20 of 25".
func FormatRange(skip, rows, total int) string {
	if rows == 0 {
		return fmt.Sprintf("0 of %d", total)
	}
	return fmt.Sprintf("%d-%d of %d", skip+1, skip+rows, total)
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
