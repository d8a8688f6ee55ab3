// Package titleparser extracts a title, year, and season/episode pair out of
// a raw release name. It keeps the chain-of-extractors shape the original
// quality/codec/resolution parser used — each extractor reports where its
// match started, and the title is whatever text sits before the earliest
// match — trimmed down to just the fields this gateway's tree needs.
package titleparser

import (
	"regexp"
	"strconv"
	"strings"
)

var sitePrefix = regexp.MustCompile(`(?i)^www\.[a-z0-9-]+\.[a-z]{2,}\s*[-\x{2013}\x{2014}]\s*`)

var extractors = []func(string, *Info) int{
	parseSeasonEpisode(`(?i)S(\d{1,2})E(\d{1,2})`),
	parseSingleSeason(`(?i)S(\d{1,2})(?:[^E\d]|$)`),
	parseYear(`\b((?:19|20)\d{2})\b`),
}

// Info is the structured result of parsing one release name.
type Info struct {
	Title    string
	Year     int
	IsSeries bool
	Season   int
	Episode  int
}

// Parse extracts title/year/season/episode from name. The title is
// truncated at the earliest point any extractor matched, then cleaned up
// per cleanTitle.
func Parse(name string) *Info {
	info := &Info{}
	pre := preprocess(name)

	index := len(pre)
	for _, extract := range extractors {
		if next := extract(pre, info); next >= 0 && next < index {
			index = next
		}
	}

	info.Title = cleanTitle(pre[:index])
	return info
}

// preprocess strips a leading "www.site.tld -" tracker tag and normalizes
// underscore-separated release names to dot-separated ones, the same two
// cleanup passes the upstream scene-name convention requires before any
// extractor can find reliable boundaries.
func preprocess(name string) string {
	name = sitePrefix.ReplaceAllString(name, "")
	if !strings.Contains(name, ".") && strings.Contains(name, "_") {
		name = strings.ReplaceAll(name, "_", ".")
	}
	return name
}

// cleanTitle trims separator debris and re-cases an all-caps title, mirroring
// the original's title-case fallback for all-uppercase release names.
func cleanTitle(title string) string {
	title = strings.Trim(title, " .-_")
	title = strings.ReplaceAll(title, ".", " ")
	title = strings.ReplaceAll(title, "_", " ")
	title = strings.TrimSpace(title)

	if len(title) > 2 && title == strings.ToUpper(title) {
		title = titleCase(title)
	}

	return title
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func parseYear(pattern string) func(string, *Info) int {
	compiled := regexp.MustCompile(pattern)
	return func(s string, info *Info) int {
		if info.Year > 0 {
			return -1
		}
		loc := lastMatch(compiled, s)
		if loc == nil {
			return -1
		}
		info.Year, _ = strconv.Atoi(s[loc[0]:loc[1]])
		return loc[0]
	}
}

func parseSeasonEpisode(pattern string) func(string, *Info) int {
	compiled := regexp.MustCompile(pattern)
	return func(s string, info *Info) int {
		if info.IsSeries {
			return -1
		}
		matches := compiled.FindAllStringSubmatchIndex(s, -1)
		if len(matches) == 0 {
			return -1
		}
		loc := matches[len(matches)-1]
		info.Season, _ = strconv.Atoi(s[loc[2]:loc[3]])
		info.Episode, _ = strconv.Atoi(s[loc[4]:loc[5]])
		info.IsSeries = true
		return loc[0]
	}
}

func parseSingleSeason(pattern string) func(string, *Info) int {
	compiled := regexp.MustCompile(pattern)
	return func(s string, info *Info) int {
		if info.IsSeries {
			return -1
		}
		matches := compiled.FindAllStringSubmatchIndex(s, -1)
		if len(matches) == 0 {
			return -1
		}
		loc := matches[len(matches)-1]
		info.Season, _ = strconv.Atoi(s[loc[2]:loc[3]])
		info.IsSeries = true
		return loc[0]
	}
}

func lastMatch(re *regexp.Regexp, s string) []int {
	matches := re.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return nil
	}
	return matches[len(matches)-1]
}
