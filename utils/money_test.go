package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "9.99", FormatCents(999))
	assert.Equal(t, "10.00", FormatCents(1000))
	assert.Equal(t, "24.97", FormatCents(2497))
	assert.Equal(t, "-3.50", FormatCents(-350))
}
