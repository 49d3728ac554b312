package domain

// LookupKind selects which entity a caller wants a search query for.
// It also determines which eligibility-cache slot is read and written.
type LookupKind string

const (
	// KindTrack queries for the current track (title plus artist).
	KindTrack LookupKind = "track"
	// KindArtist queries for the current artist.
	KindArtist LookupKind = "artist"
	// KindAlbum queries for the current album.
	KindAlbum LookupKind = "album"
)

// Valid reports whether k is one of the three known lookup kinds.
func (k LookupKind) Valid() bool {
	switch k {
	case KindTrack, KindArtist, KindAlbum:
		return true
	}
	return false
}

// Payload is the raw, loosely typed mapping emitted by the now-playing
// provider. No field is guaranteed to be present or to have any particular
// type; every read goes through the normalize package's total accessors.
type Payload map[string]any

// ProbeResult is the outcome of one provider invocation.
type ProbeResult struct {
	// Payload is the parsed provider output, nil when no candidate produced
	// usable JSON.
	Payload Payload
	// BinaryPath is the candidate executable that answered, empty on failure.
	BinaryPath string
	// AttemptedPaths holds one human-readable note per failed candidate, in
	// the order they were tried.
	AttemptedPaths []string
	// NotInstalled is true only when every candidate path failed with a
	// not-found class of error.
	NotInstalled bool
	// Unsupported is true when the host platform cannot run the provider at
	// all; no candidates are attempted in that case.
	Unsupported bool
	// Err carries the last failure diagnostic, empty on success.
	Err string
}

// Status is the display-facing classification of the current state.
type Status string

const (
	StatusOK                  Status = "ok"
	StatusNoTrack             Status = "no-track"
	StatusMissingProvider     Status = "missing-provider"
	StatusUnsupportedPlatform Status = "unsupported-platform"
	StatusError               Status = "error"
)

// DisplayState is the reconciled state rendered by the persistent indicator.
// Invariant: Status == StatusOK implies Track is non-empty.
type DisplayState struct {
	Track      string `json:"track"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	ArtworkURL string `json:"artworkUrl"`
	Status     Status `json:"status"`
	Err        string `json:"error,omitempty"`
}
