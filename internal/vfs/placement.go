package vfs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dbytex91/plexdav/internal/metadata"
	"github.com/dbytex91/plexdav/internal/model"
)

// buildItem is the single record type that flows through the rebuild
// pipeline (internal/pipe.Pipe only ever carries one type end to end): it
// starts as just a torrent and accumulates its resolved placements. Index
// records its position in the upstream listing so the rebuild can restore
// submission order after the pipeline's concurrent Map stage completes
// items out of order.
type buildItem struct {
	Index      int
	Torrent    model.RawEntry
	Placements []placement
}

// placement is a fully-resolved instruction: which virtual file goes where.
type placement struct {
	isSeries bool
	dirName  string // movie folder name, or show name for series
	season   int
	file     model.VirtualFile
}

func (p placement) apply(b *builder) {
	if p.isSeries {
		b.placeSeriesEpisode(p.dirName, p.season, p.file)
		return
	}
	b.placeMovie(p.dirName, p.file)
}

func (e *Engine) placementFor(ctx context.Context, cf model.ClassifiedFile, now time.Time) placement {
	file := model.VirtualFile{
		Name:   cf.Filename,
		Size:   cf.Size,
		RDHref: cf.RDHref,
		MTime:  now,
	}

	if cf.Media.IsSeries {
		show, ok := e.resolver.Resolve(ctx, cf.Media.Title, cf.Media.Year, metadata.Series)
		if !ok || show == "" {
			show = cf.Media.Title
		}

		season := 1
		if cf.Media.Season != nil && *cf.Media.Season != 0 {
			season = *cf.Media.Season
		}

		return placement{isSeries: true, dirName: show, season: season, file: file}
	}

	dirName, ok := e.resolver.Resolve(ctx, cf.Media.Title, cf.Media.Year, metadata.Movie)
	if !ok || dirName == "" {
		dirName = synthesizeMovieDir(cf.Media.Title, cf.Media.Year)
	}

	return placement{isSeries: false, dirName: dirName, file: file}
}

func synthesizeMovieDir(title string, year int) string {
	if year > 0 {
		return fmt.Sprintf("%s (%d)", title, year)
	}
	return title
}

func splitPath(p string) []string {
	segments := strings.Split(p, "/")
	out := segments[:0]
	for _, s := range segments {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
