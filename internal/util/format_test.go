package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayValue(t *testing.T) {
	assert.Equal(t, "N/A", DisplayValue(""))
	assert.Equal(t, "   ", DisplayValue("   "))
	assert.Equal(t, "Russell", DisplayValue("Russell"))
}

func TestFormatRange(t *testing.T) {
	assert.Equal(t, "21-25 of 25", FormatRange(20, 5, 25))
	assert.Equal(t, "0 of 0", FormatRange(0, 0, 0))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "russel...", TruncateString("russellwhyte", 9))
	assert.Equal(t, "ru", TruncateString("russellwhyte", 2))
}

func TestFormatPageLabels(t *testing.T) {
	assert.Equal(t, "Page 3 of 3", FormatPageInfo(3, 3))
	assert.Equal(t, "25 per page", FormatPageSize(25))
}
