// Package match scores candidate search results against the probe's album
// and artist fields, so album- and artist-specific screens can pick the
// entry that corresponds to what is actually playing.
package match

import (
	"strings"
	"unicode"
)

// Point values for the scoring scheme.
const (
	scoreExact       = 100
	scoreSubstring   = 60
	scoreArtistBonus = 20
)

// Candidate is one search result under consideration.
type Candidate struct {
	// Name is the candidate's primary field (album title or artist name).
	Name string
	// Artist is the candidate's artist field, used for the exact-artist
	// bonus. May be empty.
	Artist string
}

// Normalize lowercases s and strips punctuation so cosmetic differences
// ("Deluxe Edition!" vs "deluxe edition") do not defeat matching.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Score rates how well a candidate matches the wanted name and artist.
// Exact name match scores 100, a substring in either direction 60, and an
// exact artist match adds 20. A score of zero means no match at all.
func Score(c Candidate, wantName, wantArtist string) int {
	name := Normalize(c.Name)
	want := Normalize(wantName)
	if name == "" || want == "" {
		return 0
	}

	score := 0
	switch {
	case name == want:
		score = scoreExact
	case strings.Contains(name, want) || strings.Contains(want, name):
		score = scoreSubstring
	default:
		return 0
	}

	if wantArtist != "" && Normalize(c.Artist) == Normalize(wantArtist) {
		score += scoreArtistBonus
	}
	return score
}

// BestIndex returns the index of the highest-scoring candidate, or -1 when
// nothing matches. Ties keep the first-seen candidate.
func BestIndex(candidates []Candidate, wantName, wantArtist string) int {
	best, bestScore := -1, 0
	for i, c := range candidates {
		if s := Score(c, wantName, wantArtist); s > bestScore {
			best, bestScore = i, s
		}
	}
	return best
}
