package indicator

import (
	"strings"

	"github.com/kendaniels/now-playing/internal/domain"
)

// segment is one piece of a parsed title template: either a literal or a
// {placeholder} name.
type segment struct {
	field bool
	text  string
}

// RenderTitle expands the {track}, {artist} and {album} placeholders in
// tmpl from the display state. Literal separators adjacent to an empty
// field are collapsed so missing fields do not leave dangling " – " runs.
func RenderTitle(tmpl string, s domain.DisplayState) string {
	values := map[string]string{
		"track":  s.Track,
		"artist": s.Artist,
		"album":  s.Album,
	}

	var (
		b          strings.Builder
		pending    string
		emitted    bool
		afterEmpty bool
	)
	for _, seg := range resolveSegments(tmpl, values) {
		if !seg.field {
			pending += seg.text
			continue
		}
		if seg.text == "" {
			// An empty field absorbs the separator before it.
			pending = ""
			afterEmpty = true
			continue
		}
		if pending != "" && (emitted || !afterEmpty) {
			b.WriteString(pending)
		}
		b.WriteString(seg.text)
		pending = ""
		emitted = true
		afterEmpty = false
	}
	if pending != "" && !afterEmpty {
		b.WriteString(pending)
	}
	return strings.TrimSpace(b.String())
}

// resolveSegments parses tmpl and resolves each placeholder against values.
// Unknown placeholders are kept verbatim as literals.
func resolveSegments(tmpl string, values map[string]string) []segment {
	parsed := parseTemplate(tmpl)
	out := make([]segment, 0, len(parsed))
	for _, seg := range parsed {
		if !seg.field {
			out = append(out, seg)
			continue
		}
		v, known := values[seg.text]
		if !known {
			out = append(out, segment{text: "{" + seg.text + "}"})
			continue
		}
		out = append(out, segment{field: true, text: v})
	}
	return out
}

// parseTemplate splits tmpl into literal and placeholder segments.
func parseTemplate(tmpl string) []segment {
	var segs []segment
	for len(tmpl) > 0 {
		open := strings.IndexByte(tmpl, '{')
		if open < 0 {
			segs = append(segs, segment{text: tmpl})
			break
		}
		length := strings.IndexByte(tmpl[open:], '}')
		if length < 0 {
			segs = append(segs, segment{text: tmpl})
			break
		}
		if open > 0 {
			segs = append(segs, segment{text: tmpl[:open]})
		}
		segs = append(segs, segment{field: true, text: tmpl[open+1 : open+length]})
		tmpl = tmpl[open+length+1:]
	}
	return segs
}
