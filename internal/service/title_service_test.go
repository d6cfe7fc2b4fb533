package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeTitle(t *testing.T) {
	assert.Equal(t, "Solving quadratics", sanitizeTitle("  Solving quadratics \n"))
	assert.Equal(t, "Limits and continuity", sanitizeTitle(`"Limits and continuity"`))
	assert.Equal(t, "Chain rule intro", sanitizeTitle("Chain rule\nintro"))
	assert.Equal(t, "", sanitizeTitle("   "))

	long := sanitizeTitle(strings.Repeat("x", 200))
	assert.LessOrEqual(t, len(long), titleMaxLen)

	accented := sanitizeTitle(strings.Repeat(" École Δ ", 40))
	assert.True(t, utf8.ValidString(accented))
	assert.LessOrEqual(t, utf8.RuneCountInString(accented), titleMaxLen)
}
