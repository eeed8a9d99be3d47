package diffmodel

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprintSeparator is an unambiguous byte sequence between the path
// and body components of a fingerprint input. It cannot appear inside
// a path, which git never allows to contain NUL.
var fingerprintSeparator = []byte{0}

const shortIDLen = 7

// fingerprint computes the full-length content-addressed hash of a
// hunk: new path, separator, old path, separator, raw body bytes. It
// is deterministic: equal inputs always yield equal output.
func fingerprint(newPath, oldPath string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(newPath))
	h.Write(fingerprintSeparator)
	h.Write([]byte(oldPath))
	h.Write(fingerprintSeparator)
	h.Write(body)

	return hex.EncodeToString(h.Sum(nil))
}

// AssignIDs computes a stable short ID for every hunk across an entire
// view (all files in one `hunks` invocation). IDs start at 7 hex
// characters; if two hunks in the same view collide on their current
// prefix, only the colliding entries are extended by one more
// character (repeating until distinct) — an entry already unique at a
// shorter prefix is final and is never regrouped at a longer one. The
// underlying full fingerprint is always computed first, so extension
// never needs to rehash.
func AssignIDs(files []*FileChange) {
	type entry struct {
		hunk *Hunk
		full string
	}

	var active []entry

	for _, f := range files {
		for _, h := range f.Hunks {
			h.AssignIntrinsicNumbers()

			full := fingerprint(f.NewPath, f.OldPath, h.RawBody())
			active = append(active, entry{hunk: h, full: full})
		}
	}

	length := shortIDLen

	for len(active) > 0 {
		groups := make(map[string][]entry, len(active))

		for _, e := range active {
			l := length
			if l > len(e.full) {
				l = len(e.full)
			}

			prefix := e.full[:l]
			groups[prefix] = append(groups[prefix], e)
		}

		var remaining []entry

		for prefix, group := range groups {
			if len(group) == 1 {
				group[0].hunk.ID = prefix

				continue
			}

			remaining = append(remaining, group...)
		}

		active = remaining
		length++

		if len(active) > 0 && length > len(active[0].full) {
			// Exhausted the hash; assign whatever we have, distinct
			// or not. This cannot happen in practice with sha256.
			for _, e := range active {
				e.hunk.ID = e.full
			}

			return
		}
	}
}
