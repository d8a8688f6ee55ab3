package vfs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dbytex91/plexdav/internal/model"
)

func TestBuilderPlaceMovieCreatesMoviesSubtree(t *testing.T) {
	now := time.Now()
	b := newBuilder(now)

	b.placeMovie("The Matrix (1999)", model.VirtualFile{Name: "The.Matrix.1999.mkv", Size: 100})

	movies := b.root.Children["Movies"].(*model.VirtualDir)
	dir, ok := movies.Children["The Matrix (1999)"].(*model.VirtualDir)
	require.True(t, ok)
	_, ok = dir.Children["The.Matrix.1999.mkv"].(*model.VirtualFile)
	require.True(t, ok)

	_, hasSeries := b.root.Children["Series"].(*model.VirtualDir).Children["The Matrix (1999)"]
	require.False(t, hasSeries)
}

func TestBuilderPlaceSeriesEpisodeCreatesShowAndSeasonDirs(t *testing.T) {
	now := time.Now()
	b := newBuilder(now)

	b.placeSeriesEpisode("Gen V", 2, model.VirtualFile{Name: "Gen.V.S02E05.mkv", Size: 100})

	series := b.root.Children["Series"].(*model.VirtualDir)
	show := series.Children["Gen V"].(*model.VirtualDir)
	season := show.Children["Season 02"].(*model.VirtualDir)
	_, ok := season.Children["Gen.V.S02E05.mkv"].(*model.VirtualFile)
	require.True(t, ok)
}

func TestBuilderDirectoryFileCollisionIsSkippedNotFatal(t *testing.T) {
	now := time.Now()
	b := newBuilder(now)

	b.placeMovie("Collision", model.VirtualFile{Name: "a.mkv", Size: 1})

	movies := b.root.Children["Movies"].(*model.VirtualDir)
	// Force a file where a directory is expected, then try to place a
	// directory-shaped entry there: must be skipped, not crash the builder.
	movies.Children["TakenByFile"] = &model.VirtualFile{Name: "TakenByFile", Size: 1}
	dir := getOrCreateDir(movies, "TakenByFile", now)
	require.Nil(t, dir)
}

func TestBuilderFileDirectoryCollisionIsSkippedNotFatal(t *testing.T) {
	now := time.Now()
	b := newBuilder(now)

	movies := b.root.Children["Movies"].(*model.VirtualDir)
	sub := model.NewDir("TakenByDir", now)
	movies.Children["TakenByDir"] = sub

	// Placing a file whose name collides with an existing directory must
	// skip the file rather than overwrite the directory.
	placeFile(movies, model.VirtualFile{Name: "TakenByDir", Size: 1})
	require.Same(t, sub, movies.Children["TakenByDir"])
}
