// Package vfs owns the current virtual tree snapshot and rebuilds it on
// demand, fanning a torrent listing out through the classifier and metadata
// resolver to produce a fresh directory tree of movies and series.
package vfs

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/dbytex91/plexdav/internal/classifier"
	"github.com/dbytex91/plexdav/internal/humanize"
	"github.com/dbytex91/plexdav/internal/metadata"
	"github.com/dbytex91/plexdav/internal/model"
	"github.com/dbytex91/plexdav/internal/pipe"
	"github.com/dbytex91/plexdav/internal/upstream"
)

// Engine is a process-wide singleton: constructed once at startup, torn
// down at shutdown, never reinitialized.
type Engine struct {
	upstream *upstream.Client
	resolver *metadata.Resolver
	ttl      time.Duration

	root      atomic.Pointer[model.VirtualDir]
	lastBuild atomic.Int64

	rebuildMu  sync.Mutex
	rebuilding bool
	rebuiltCh  chan struct{}
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithTTL overrides the default staleness threshold.
func WithTTL(ttl time.Duration) Option {
	return func(e *Engine) { e.ttl = ttl }
}

// New builds an Engine with an empty tree; the first EnsureFresh call
// populates it.
func New(up *upstream.Client, resolver *metadata.Resolver, opts ...Option) *Engine {
	e := &Engine{
		upstream: up,
		resolver: resolver,
		ttl:      5 * time.Minute,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.root.Store(model.NewDir("", time.Time{}))
	return e
}

// EnsureFresh triggers a rebuild if the current snapshot is older than the
// configured TTL. Overlapping callers coalesce onto one in-flight rebuild.
func (e *Engine) EnsureFresh(ctx context.Context) {
	if time.Since(time.Unix(0, e.lastBuild.Load())) <= e.ttl {
		return
	}

	e.rebuildMu.Lock()
	if e.rebuilding {
		ch := e.rebuiltCh
		e.rebuildMu.Unlock()
		<-ch
		return
	}

	e.rebuilding = true
	ch := make(chan struct{})
	e.rebuiltCh = ch
	e.rebuildMu.Unlock()

	e.rebuild(ctx)

	e.rebuildMu.Lock()
	e.rebuilding = false
	e.rebuildMu.Unlock()
	close(ch)
}

// Resolve walks path against the current snapshot, triggering a freshness
// check first. An empty/"/"-only path resolves to the root.
func (e *Engine) Resolve(ctx context.Context, path string) model.Node {
	e.EnsureFresh(ctx)

	root := e.root.Load()
	segments := splitPath(path)
	if len(segments) == 0 {
		return root
	}

	var current model.Node = root
	for _, seg := range segments {
		dir, ok := current.(*model.VirtualDir)
		if !ok {
			return nil
		}
		next, found := dir.Children[seg]
		if !found {
			return nil
		}
		current = next
	}

	return current
}

func (e *Engine) rebuild(ctx context.Context) {
	started := time.Now()
	b := newBuilder(started)

	torrents, err := e.upstream.ListTorrents(ctx)
	if err != nil {
		log.Errorf("vfs: rebuild: list torrents: %v", err)
		e.publish(b, started)
		return
	}

	items := make([]*buildItem, 0, len(torrents))
	for i, t := range torrents {
		items = append(items, &buildItem{Index: i, Torrent: t})
	}

	var fileCount int
	var byteCount uint64

	results := make([]*buildItem, 0, len(items))
	var resultsMu sync.Mutex

	p := pipe.New(func() ([]*buildItem, error) { return items, nil })
	p.Map(func(item *buildItem) (*buildItem, error) {
		item.Placements = e.placementsFor(ctx, item.Torrent)
		return item, nil
	}, pipe.Concurrency[buildItem](8))

	err = p.Sink(func(item *buildItem) error {
		resultsMu.Lock()
		results = append(results, item)
		resultsMu.Unlock()
		return nil
	})
	if err != nil {
		log.Errorf("vfs: rebuild: pipeline: %v", err)
	}

	// The Map stage's 8 workers complete items out of order; re-sequence by
	// the original upstream listing order before applying placements, so
	// collisions resolve the same way on every rebuild of the same input.
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	for _, item := range results {
		for _, pl := range item.Placements {
			pl.apply(b)
			fileCount++
			byteCount += uint64(pl.file.Size)
		}
	}

	log.Infof("vfs: rebuilt tree from %d torrents, %d files, %s", len(torrents), fileCount, humanize.Bytes(byteCount))
	e.publish(b, started)
}

func (e *Engine) publish(b *builder, started time.Time) {
	e.root.Store(b.root)
	e.lastBuild.Store(started.UnixNano())
}

// placementsFor lists one torrent's files, classifies them, and resolves a
// clean display title for each — the unit of work the rebuild pipeline's
// Map stage fans out concurrently. Any upstream failure here is logged and
// yields no placements rather than aborting the rebuild.
func (e *Engine) placementsFor(ctx context.Context, torrent model.RawEntry) []placement {
	files, err := e.upstream.ListTorrentFiles(ctx, torrent)
	if err != nil {
		log.Errorf("vfs: rebuild: list files for %q: %v", torrent.Name, err)
		return nil
	}

	classified := classifier.Classify(torrent.Name, files)
	now := time.Now()
	placements := make([]placement, 0, len(classified))

	for _, cf := range classified {
		placements = append(placements, e.placementFor(ctx, cf, now))
	}

	return placements
}
