// Package normalize turns the provider's loosely typed JSON payload into
// typed fields. Every accessor is total: absent or malformed data resolves
// to a zero value, never an error.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kendaniels/now-playing/internal/domain"
)

const defaultMIMEType = "image/jpeg"

var (
	// Sub-keys searched when the artwork field is itself an object,
	// in priority order.
	nestedArtworkKeys = []string{"url", "src", "data", "image", "artwork_url", "artworkUrl"}

	// Flat payload keys searched when no nested artwork object matched,
	// in priority order.
	flatArtworkKeys = []string{"artwork_url", "artworkUrl", "artwork", "album_art_url", "albumArtUrl", "image", "thumbnail"}

	// Keys that may carry the artwork MIME type, on the payload or inside
	// a nested artwork object.
	mimeTypeKeys = []string{"artworkMimeType", "artwork_mime_type", "mimeType", "mime_type"}

	// Prefixes that mark a string as already renderable without wrapping.
	urlSchemes = []string{"http://", "https://", "data:", "file://"}
)

// Parse decodes raw provider stdout into a payload mapping.
func Parse(data []byte) (domain.Payload, error) {
	var p domain.Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}
	return p, nil
}

// Field returns the trimmed string value stored under key. Absent or
// non-string values resolve to an empty string.
func Field(p domain.Payload, key string) string {
	if p == nil {
		return ""
	}
	if v, ok := p[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// Title returns the track title field.
func Title(p domain.Payload) string { return Field(p, "title") }

// Artist returns the artist field.
func Artist(p domain.Payload) string { return Field(p, "artist") }

// Album returns the album field.
func Album(p domain.Payload) string { return Field(p, "album") }

// ArtworkURL resolves the payload's artwork into a renderable URL.
// Resolution order: inline base64 image data, then a nested artwork object,
// then flat candidate keys. Raw base64 strings are wrapped into a data URI
// using the resolved MIME type. Returns an empty string when nothing
// matches.
func ArtworkURL(p domain.Payload) string {
	if p == nil {
		return ""
	}

	mimeType := stringFromKeys(p, mimeTypeKeys, defaultMIMEType)

	if data := Field(p, "artworkData"); data != "" {
		return asRenderable(data, mimeType)
	}

	if obj, ok := p["artwork"].(map[string]any); ok {
		nestedMIME := stringFromKeys(obj, mimeTypeKeys, mimeType)
		for _, key := range nestedArtworkKeys {
			if v, ok := obj[key].(string); ok && strings.TrimSpace(v) != "" {
				return asRenderable(strings.TrimSpace(v), nestedMIME)
			}
		}
	}

	for _, key := range flatArtworkKeys {
		if v := Field(p, key); v != "" {
			return asRenderable(v, mimeType)
		}
	}

	return ""
}

// stringFromKeys returns the first non-empty string value found under any
// of keys, or fallback.
func stringFromKeys(m map[string]any, keys []string, fallback string) string {
	for _, key := range keys {
		if v, ok := m[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return fallback
}

// asRenderable passes through strings that already carry a URL scheme and
// wraps everything else as base64 image data.
func asRenderable(s, mimeType string) string {
	for _, scheme := range urlSchemes {
		if strings.HasPrefix(s, scheme) {
			return s
		}
	}
	return "data:" + mimeType + ";base64," + s
}

// QueryFor derives the search query for a lookup kind. An empty result
// means the payload cannot answer that kind.
func QueryFor(kind domain.LookupKind, p domain.Payload) string {
	switch kind {
	case domain.KindTrack:
		title := Title(p)
		if title == "" {
			return ""
		}
		return strings.TrimSpace(title + " " + Artist(p))
	case domain.KindArtist:
		return Artist(p)
	case domain.KindAlbum:
		return Album(p)
	}
	return ""
}

// Eligible reports whether the payload carries enough context to be trusted
// as a media snapshot for kind. Album presence is the minimal signal that
// the payload corresponds to a full media context for every kind; track and
// artist lookups additionally need a title. The derived query itself must
// also be non-empty.
func Eligible(kind domain.LookupKind, p domain.Payload) bool {
	if Album(p) == "" {
		return false
	}
	switch kind {
	case domain.KindTrack, domain.KindArtist:
		if Title(p) == "" {
			return false
		}
	}
	return QueryFor(kind, p) != ""
}
