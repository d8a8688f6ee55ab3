package metadata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatMovieTitle(t *testing.T) {
	require.Equal(t, "The Matrix (1999)", formatMovieTitle("The Matrix", 1999))
	require.Equal(t, "The Matrix", formatMovieTitle("The Matrix", 0))
}

func TestFirstYear(t *testing.T) {
	require.Equal(t, 2019, firstYear("2019-2021"))
	require.Equal(t, 2019, firstYear("2019–"))
	require.Equal(t, 0, firstYear(""))
	require.Equal(t, 2005, firstYear("2005"))
}

func TestOMDbSearchMissingAPIKeyIsPermanentNoOp(t *testing.T) {
	p := NewOMDb("")
	title, ok := p.Search(context.Background(), "The Matrix", 1999, Movie)
	require.False(t, ok)
	require.Empty(t, title)
}

func TestOMDbName(t *testing.T) {
	require.Equal(t, "omdb", NewOMDb("key").Name())
}
