// Package model holds the data types shared across the gateway's pipeline
// stages: what the upstream lists, what the name parser extracts, what the
// classifier emits, and the tree nodes the projection engine publishes.
package model

import "time"

// RawEntry is one PROPFIND response member, upstream and unparsed.
type RawEntry struct {
	Name  string
	Href  string
	IsDir bool
	Size  int64
}

// MediaInfo is the classifier's merge of the torrent-level and file-level
// name parses for one file. IsSeries is true iff Season is non-nil; that
// invariant is enforced by the classifier's merge, never by callers.
type MediaInfo struct {
	Title        string
	CleanTitle   string
	Year         int
	IsSeries     bool
	Season       *int
	Episode      *int
	OriginalName string
}

// ClassifiedFile is a single upstream file placed under a resolved title.
type ClassifiedFile struct {
	Media    MediaInfo
	Filename string
	RDHref   string
	Size     int64
}

// VirtualFile is a leaf of the published tree.
type VirtualFile struct {
	Name   string
	Size   int64
	RDHref string
	MTime  time.Time
}

// VirtualDir is an interior node of the published tree. Children is keyed
// by name so placement and lookup share one map, never a linear scan.
type VirtualDir struct {
	Name     string
	MTime    time.Time
	Children map[string]Node
}

// Node is the tagged-union member of a tree: either a *VirtualDir or a
// *VirtualFile. Consumers type-switch on it; there is no shared interface
// method beyond the marker, deliberately, since callers always need to know
// which kind they have.
type Node interface {
	nodeName() string
}

func (d *VirtualDir) nodeName() string  { return d.Name }
func (f *VirtualFile) nodeName() string { return f.Name }

// Name returns the node's base name regardless of kind.
func Name(n Node) string { return n.nodeName() }

// NewDir returns an empty directory node ready to receive children.
func NewDir(name string, mtime time.Time) *VirtualDir {
	return &VirtualDir{Name: name, MTime: mtime, Children: map[string]Node{}}
}
