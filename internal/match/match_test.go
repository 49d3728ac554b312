package match

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Abbey Road", "abbey road"},
		{"ABBEY ROAD!", "abbey road"},
		{"O.K. Computer", "ok computer"},
		{"  spaced   out  ", "spaced out"},
		{"...", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.expected {
			t.Errorf("Normalize(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		candidate  Candidate
		wantName   string
		wantArtist string
		expected   int
	}{
		{
			name:      "Exact Match",
			candidate: Candidate{Name: "Abbey Road"},
			wantName:  "abbey road!",
			expected:  100,
		},
		{
			name:      "Candidate Contains Want",
			candidate: Candidate{Name: "Abbey Road (Remastered)"},
			wantName:  "Abbey Road",
			expected:  60,
		},
		{
			name:      "Want Contains Candidate",
			candidate: Candidate{Name: "Abbey Road"},
			wantName:  "Abbey Road Deluxe",
			expected:  60,
		},
		{
			name:       "Exact Match With Artist Bonus",
			candidate:  Candidate{Name: "Abbey Road", Artist: "The Beatles"},
			wantName:   "Abbey Road",
			wantArtist: "the beatles",
			expected:   120,
		},
		{
			name:       "Substring With Artist Bonus",
			candidate:  Candidate{Name: "Abbey Road (Remastered)", Artist: "The Beatles"},
			wantName:   "Abbey Road",
			wantArtist: "The Beatles",
			expected:   80,
		},
		{
			name:       "Artist Mismatch Gets No Bonus",
			candidate:  Candidate{Name: "Abbey Road", Artist: "A Tribute Band"},
			wantName:   "Abbey Road",
			wantArtist: "The Beatles",
			expected:   100,
		},
		{
			name:      "No Match",
			candidate: Candidate{Name: "The Wall"},
			wantName:  "Abbey Road",
			expected:  0,
		},
		{
			name:      "Empty Want",
			candidate: Candidate{Name: "Abbey Road"},
			wantName:  "",
			expected:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.candidate, tt.wantName, tt.wantArtist); got != tt.expected {
				t.Errorf("expected score %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestBestIndex(t *testing.T) {
	candidates := []Candidate{
		{Name: "Abbey Road (Remastered)", Artist: "The Beatles"}, // 60 + 20
		{Name: "Abbey Road", Artist: "The Beatles"},              // 100 + 20
		{Name: "Abbey Road", Artist: "Karaoke Crew"},             // 100
	}

	if got := BestIndex(candidates, "Abbey Road", "The Beatles"); got != 1 {
		t.Errorf("expected index 1, got %d", got)
	}

	// Ties keep the first-seen candidate.
	tied := []Candidate{
		{Name: "Abbey Road"},
		{Name: "abbey road"},
	}
	if got := BestIndex(tied, "Abbey Road", ""); got != 0 {
		t.Errorf("expected first-seen winner on tie, got index %d", got)
	}

	if got := BestIndex(candidates, "Completely Different", ""); got != -1 {
		t.Errorf("expected -1 for no match, got %d", got)
	}

	if got := BestIndex(nil, "Abbey Road", ""); got != -1 {
		t.Errorf("expected -1 for empty slice, got %d", got)
	}
}
