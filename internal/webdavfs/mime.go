package webdavfs

import (
	"path"
	"strings"
)

var extMIME = map[string]string{
	"mkv": "video/x-matroska",
	"mp4": "video/mp4",
	"avi": "video/x-msvideo",
	"m4v": "video/x-m4v",
	"ts":  "video/mp2t",
	"wmv": "video/x-ms-wmv",
	"iso": "application/x-iso9660-image",
	"srt": "text/plain",
	"sub": "text/plain",
	"ass": "text/plain",
	"ssa": "text/plain",
	"vtt": "text/vtt",
}

// contentType maps a file name's extension to the MIME type the downstream
// WebDAV client expects, falling back to a generic binary stream.
func contentType(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if mime, ok := extMIME[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}
