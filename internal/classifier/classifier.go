// Package classifier turns one torrent's raw file listing into placement
// records, merging the torrent-level release name (canonical title) with
// each file's own name (canonical season/episode) the way original
// classifier.py's classify_torrent_files did.
package classifier

import (
	"path"
	"strings"

	"github.com/dbytex91/plexdav/internal/model"
	"github.com/dbytex91/plexdav/internal/titleparser"
)

var videoExtensions = map[string]bool{
	"mkv": true, "mp4": true, "avi": true, "iso": true,
	"m4v": true, "ts": true, "wmv": true,
}

var subtitleExtensions = map[string]bool{
	"srt": true, "sub": true, "ass": true, "ssa": true, "vtt": true,
}

// Allowed reports whether ext (no leading dot, any case) is a file type
// this gateway ever projects into the tree.
func Allowed(ext string) bool {
	ext = strings.ToLower(ext)
	return videoExtensions[ext] || subtitleExtensions[ext]
}

// Classify parses torrentName once and merges it against each file in
// files, dropping anything outside the extension allowlist.
func Classify(torrentName string, files []model.RawEntry) []model.ClassifiedFile {
	torrentInfo := titleparser.Parse(torrentName)

	out := make([]model.ClassifiedFile, 0, len(files))
	for _, f := range files {
		ext := strings.TrimPrefix(path.Ext(f.Name), ".")
		if !Allowed(ext) {
			continue
		}

		fileInfo := titleparser.Parse(f.Name)
		media := merge(torrentName, torrentInfo, fileInfo)

		out = append(out, model.ClassifiedFile{
			Media:    media,
			Filename: f.Name,
			RDHref:   f.Href,
			Size:     f.Size,
		})
	}

	return out
}

func merge(torrentName string, torrentInfo, fileInfo *titleparser.Info) model.MediaInfo {
	title := torrentInfo.Title
	if title == "" {
		title = fileInfo.Title
	}

	year := torrentInfo.Year
	if year == 0 {
		year = fileInfo.Year
	}

	isSeries := fileInfo.IsSeries || torrentInfo.IsSeries

	var season, episode *int
	if isSeries {
		s := fileInfo.Season
		if s == 0 {
			s = torrentInfo.Season
		}
		season = &s

		e := fileInfo.Episode
		if e == 0 {
			e = torrentInfo.Episode
		}
		episode = &e
	}

	return model.MediaInfo{
		Title:        title,
		Year:         year,
		IsSeries:     isSeries,
		Season:       season,
		Episode:      episode,
		OriginalName: torrentName,
	}
}
