package vfs

import (
	"regexp"
	"strings"
)

var invalidChars = regexp.MustCompile(`[/\\:*?"<>|]`)
var runsOfSpace = regexp.MustCompile(`\s{2,}`)

// sanitize strips filesystem-hostile characters from a name derived from
// user-controlled data (a release title, a resolved show name) and
// collapses whitespace, so every directory the builder creates is a legal
// path segment on every platform.
func sanitize(name string) string {
	name = invalidChars.ReplaceAllString(name, " ")
	name = runsOfSpace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}
