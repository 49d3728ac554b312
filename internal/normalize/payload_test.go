package normalize

import (
	"testing"

	"github.com/kendaniels/now-playing/internal/domain"
)

func TestField(t *testing.T) {
	tests := []struct {
		name     string
		payload  domain.Payload
		key      string
		expected string
	}{
		{
			name:     "Present String",
			payload:  domain.Payload{"title": "Song"},
			key:      "title",
			expected: "Song",
		},
		{
			name:     "Trims Whitespace",
			payload:  domain.Payload{"artist": "  Artist \n"},
			key:      "artist",
			expected: "Artist",
		},
		{
			name:     "Absent Key",
			payload:  domain.Payload{"title": "Song"},
			key:      "album",
			expected: "",
		},
		{
			name:     "Non-String Value",
			payload:  domain.Payload{"title": 42},
			key:      "title",
			expected: "",
		},
		{
			name:     "Nil Payload",
			payload:  nil,
			key:      "title",
			expected: "",
		},
		{
			name:     "Null Value",
			payload:  domain.Payload{"title": nil},
			key:      "title",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Field(tt.payload, tt.key); got != tt.expected {
				t.Errorf("Field(%q): expected %q, got %q", tt.key, tt.expected, got)
			}
		})
	}
}

func TestArtworkURL(t *testing.T) {
	tests := []struct {
		name     string
		payload  domain.Payload
		expected string
	}{
		{
			name:     "Missing Artwork Entirely",
			payload:  domain.Payload{"title": "Song", "artist": "Artist"},
			expected: "",
		},
		{
			name:     "Nil Payload",
			payload:  nil,
			expected: "",
		},
		{
			name: "Inline Base64 With Explicit MIME",
			payload: domain.Payload{
				"artworkData":     "Zm9v",
				"artworkMimeType": "image/png",
			},
			expected: "data:image/png;base64,Zm9v",
		},
		{
			name:     "Inline Base64 With Default MIME",
			payload:  domain.Payload{"artworkData": "Zm9v"},
			expected: "data:image/jpeg;base64,Zm9v",
		},
		{
			name: "Inline Data Wins Over Flat URL",
			payload: domain.Payload{
				"artworkData": "Zm9v",
				"artwork_url": "https://example.com/a.jpg",
			},
			expected: "data:image/jpeg;base64,Zm9v",
		},
		{
			name: "Nested Object URL Key",
			payload: domain.Payload{
				"artwork": map[string]any{"url": "https://example.com/cover.jpg"},
			},
			expected: "https://example.com/cover.jpg",
		},
		{
			name: "Nested Object Raw Data With Sibling MIME",
			payload: domain.Payload{
				"artwork": map[string]any{
					"data":     "Zm9v",
					"mimeType": "image/png",
				},
			},
			expected: "data:image/png;base64,Zm9v",
		},
		{
			name: "Nested Object Key Priority",
			payload: domain.Payload{
				"artwork": map[string]any{
					"src": "https://example.com/src.jpg",
					"url": "https://example.com/url.jpg",
				},
			},
			expected: "https://example.com/url.jpg",
		},
		{
			name: "Nested Object With No Usable Key Falls Through",
			payload: domain.Payload{
				"artwork":   map[string]any{"width": 300},
				"thumbnail": "https://example.com/thumb.jpg",
			},
			expected: "https://example.com/thumb.jpg",
		},
		{
			name:     "Flat HTTPS Passes Through Unchanged",
			payload:  domain.Payload{"artworkUrl": "https://example.com/a.jpg"},
			expected: "https://example.com/a.jpg",
		},
		{
			name:     "Flat File URL Passes Through",
			payload:  domain.Payload{"artwork": "file:///tmp/cover.png"},
			expected: "file:///tmp/cover.png",
		},
		{
			name:     "Flat Data URI Passes Through",
			payload:  domain.Payload{"image": "data:image/png;base64,Zm9v"},
			expected: "data:image/png;base64,Zm9v",
		},
		{
			name: "Flat Raw Base64 Gets Wrapped",
			payload: domain.Payload{
				"album_art_url":   "Zm9v",
				"artworkMimeType": "image/png",
			},
			expected: "data:image/png;base64,Zm9v",
		},
		{
			name: "Flat Key Priority",
			payload: domain.Payload{
				"thumbnail":   "https://example.com/thumb.jpg",
				"artwork_url": "https://example.com/art.jpg",
			},
			expected: "https://example.com/art.jpg",
		},
		{
			name:     "Non-String Flat Value Ignored",
			payload:  domain.Payload{"artworkUrl": 123},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArtworkURL(tt.payload); got != tt.expected {
				t.Errorf("ArtworkURL: expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestQueryFor(t *testing.T) {
	full := domain.Payload{"title": "Song", "artist": "Artist", "album": "Album"}

	tests := []struct {
		name     string
		kind     domain.LookupKind
		payload  domain.Payload
		expected string
	}{
		{name: "Track", kind: domain.KindTrack, payload: full, expected: "Song Artist"},
		{name: "Artist", kind: domain.KindArtist, payload: full, expected: "Artist"},
		{name: "Album", kind: domain.KindAlbum, payload: full, expected: "Album"},
		{
			name:     "Track Without Artist",
			kind:     domain.KindTrack,
			payload:  domain.Payload{"title": "Song"},
			expected: "Song",
		},
		{
			name:     "Track Without Title Has No Query",
			kind:     domain.KindTrack,
			payload:  domain.Payload{"artist": "Artist", "album": "Album"},
			expected: "",
		},
		{
			name:     "Unknown Kind",
			kind:     domain.LookupKind("playlist"),
			payload:  full,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QueryFor(tt.kind, tt.payload); got != tt.expected {
				t.Errorf("QueryFor(%s): expected %q, got %q", tt.kind, tt.expected, got)
			}
		})
	}
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name     string
		kind     domain.LookupKind
		payload  domain.Payload
		expected bool
	}{
		{
			name:     "Track Full Payload",
			kind:     domain.KindTrack,
			payload:  domain.Payload{"title": "Song", "artist": "Artist", "album": "Album"},
			expected: true,
		},
		{
			// Album presence is the trust signal even though track queries
			// never use the album field directly.
			name:     "Track Without Album",
			kind:     domain.KindTrack,
			payload:  domain.Payload{"title": "Song", "artist": "Artist"},
			expected: false,
		},
		{
			name:     "Track Without Title",
			kind:     domain.KindTrack,
			payload:  domain.Payload{"artist": "Artist", "album": "Album"},
			expected: false,
		},
		{
			name:     "Artist Needs Title Too",
			kind:     domain.KindArtist,
			payload:  domain.Payload{"artist": "Artist", "album": "Album"},
			expected: false,
		},
		{
			name:     "Artist Full Payload",
			kind:     domain.KindArtist,
			payload:  domain.Payload{"title": "Song", "artist": "Artist", "album": "Album"},
			expected: true,
		},
		{
			name:     "Artist With Empty Artist Field",
			kind:     domain.KindArtist,
			payload:  domain.Payload{"title": "Song", "album": "Album"},
			expected: false,
		},
		{
			name:     "Album Needs Only Album",
			kind:     domain.KindAlbum,
			payload:  domain.Payload{"album": "Album"},
			expected: true,
		},
		{
			name:     "Album Missing",
			kind:     domain.KindAlbum,
			payload:  domain.Payload{"title": "Song"},
			expected: false,
		},
		{
			name:     "Nil Payload",
			kind:     domain.KindTrack,
			payload:  nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Eligible(tt.kind, tt.payload); got != tt.expected {
				t.Errorf("Eligible(%s): expected %v, got %v", tt.kind, tt.expected, got)
			}
		})
	}
}

func TestParse(t *testing.T) {
	p, err := Parse([]byte(`{"title":"Song","artist":"Artist"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Title(p) != "Song" || Artist(p) != "Artist" {
		t.Errorf("unexpected payload: %+v", p)
	}

	if _, err := Parse([]byte("not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
