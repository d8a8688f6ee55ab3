package vfs

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/dbytex91/plexdav/internal/model"
)

// builder accumulates a brand-new tree off to the side; nothing it touches
// is visible to readers until Engine.rebuild swaps the finished root in.
type builder struct {
	root *model.VirtualDir
	now  time.Time
}

func newBuilder(now time.Time) *builder {
	root := model.NewDir("", now)
	root.Children["Movies"] = model.NewDir("Movies", now)
	root.Children["Series"] = model.NewDir("Series", now)
	return &builder{root: root, now: now}
}

// placeMovie inserts file under Movies/<dirName>/.
func (b *builder) placeMovie(dirName string, file model.VirtualFile) {
	movies := b.root.Children["Movies"].(*model.VirtualDir)
	dir := getOrCreateDir(movies, sanitize(dirName), b.now)
	if dir == nil {
		return
	}
	placeFile(dir, file)
}

// placeSeriesEpisode inserts file under Series/<showName>/Season NN/.
func (b *builder) placeSeriesEpisode(showName string, season int, file model.VirtualFile) {
	series := b.root.Children["Series"].(*model.VirtualDir)
	show := getOrCreateDir(series, sanitize(showName), b.now)
	if show == nil {
		return
	}

	seasonName := fmt.Sprintf("Season %02d", season)
	seasonDir := getOrCreateDir(show, seasonName, b.now)
	if seasonDir == nil {
		return
	}
	placeFile(seasonDir, file)
}

// placeFile inserts file into dir unless the name is already taken by a
// directory, in which case the file is skipped and logged rather than
// silently clobbering or crashing.
func placeFile(dir *model.VirtualDir, file model.VirtualFile) {
	if existing, found := dir.Children[file.Name]; found {
		if _, isDir := existing.(*model.VirtualDir); isDir {
			log.Warnf("vfs: %q already exists as a directory under %q, skipping file placement", file.Name, dir.Name)
			return
		}
	}
	dir.Children[file.Name] = &file
}

// getOrCreateDir fetches or creates the named child of parent as a
// directory. If the name is already taken by a file, that is the "colliding
// insertion" case the original implementation treats as fatal; here the
// offending directory is skipped and logged instead of crashing the rebuild.
func getOrCreateDir(parent *model.VirtualDir, name string, now time.Time) *model.VirtualDir {
	existing, found := parent.Children[name]
	if !found {
		dir := model.NewDir(name, now)
		parent.Children[name] = dir
		return dir
	}

	dir, ok := existing.(*model.VirtualDir)
	if !ok {
		log.Warnf("vfs: %q already exists as a file under %q, skipping directory placement", name, parent.Name)
		return nil
	}
	return dir
}
