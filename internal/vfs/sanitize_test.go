package vfs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeStripsInvalidCharacters(t *testing.T) {
	require.Equal(t, "Gen V Season 1", sanitize(`Gen/V:Season*1?`))
}

func TestSanitizeCollapsesWhitespace(t *testing.T) {
	require.Equal(t, "The Matrix", sanitize("The    Matrix"))
}

func TestSanitizeTrimsSurroundingSpace(t *testing.T) {
	require.Equal(t, "Gen V", sanitize("  Gen V  "))
}
