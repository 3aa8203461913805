// internal/filter/fieldpath.go
package filter

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/solatis/querybuilder/internal/types"
)

/*
 * Field path normalization and resolution.
 *
 * Readable references name the innermost field first and chain outward with a
 * locale-phrased marker ("Address in Client"). The search service expects the
 * canonical dotted form ordered outermost first ("Client.Address").
 *
 * Key functions:
 *   - ToCanonicalPath: readable -> dotted, segment order reversed
 *   - ToReadablePath: dotted -> readable, exact inverse for whitespace-free segments
 *   - Resolve: walks a decoded JSON row along a canonical path
 *
 * Normalization is idempotent after one application: a canonical path has no
 * whitespace, so readable(canonical(x)) round-trips byte for byte.
 */

// DefaultMarker is the infix word meaning "nested within".
const DefaultMarker = "in"

// PathNormalizer converts between readable and canonical field references.
// The zero value uses DefaultMarker.
type PathNormalizer struct {
	Marker string // e.g. "in", "em"
}

// NewPathNormalizer returns a normalizer for marker; blank selects DefaultMarker.
func NewPathNormalizer(marker string) PathNormalizer {
	return PathNormalizer{Marker: strings.TrimSpace(marker)}
}

func (p PathNormalizer) marker() string {
	if p.Marker == "" {
		return DefaultMarker
	}
	return p.Marker
}

// ToCanonicalPath replaces every " <marker> " with ".", strips all whitespace,
// and reverses segment order. A single-segment reference is returned unchanged.
func (p PathNormalizer) ToCanonicalPath(readable string) string {
	dotted := strings.ReplaceAll(readable, " "+p.marker()+" ", ".")
	dotted = stripWhitespace(dotted)
	segments := strings.Split(dotted, ".")
	slices.Reverse(segments)
	return strings.Join(segments, ".")
}

// ToReadablePath reverses segment order and joins with " <marker> ".
func (p PathNormalizer) ToReadablePath(canonical string) string {
	segments := strings.Split(canonical, ".")
	slices.Reverse(segments)
	return strings.Join(segments, " "+p.marker()+" ")
}

// CanonicalProjection converts a readable projection list to canonical paths.
func (p PathNormalizer) CanonicalProjection(fields []string) []string {
	paths := make([]string, len(fields))
	for i, field := range fields {
		paths[i] = p.ToCanonicalPath(field)
	}
	return paths
}

// ToCanonicalPath normalizes with DefaultMarker.
func ToCanonicalPath(readable string) string {
	return PathNormalizer{}.ToCanonicalPath(readable)
}

// ToReadablePath renders with DefaultMarker.
func ToReadablePath(canonical string) string {
	return PathNormalizer{}.ToReadablePath(canonical)
}

// stripWhitespace removes every Unicode whitespace rune.
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Resolve walks data (decoded JSON) along a canonical dotted path.
// Numeric segments index into arrays. Returns ErrPathTooDeep if the path exceeds
// MaxPathDepth and ErrFieldNotFound if any segment is missing.
func Resolve(canonical string, data any) (any, error) {
	segments := strings.Split(canonical, ".")
	if len(segments) > types.MaxPathDepth {
		return nil, types.ErrPathTooDeep
	}
	return resolveRecursive(segments, data)
}

// resolveRecursive consumes one segment per level.
func resolveRecursive(segments []string, current any) (any, error) {
	if len(segments) == 0 {
		return current, nil
	}

	seg := segments[0]
	remaining := segments[1:]

	switch v := current.(type) {
	case map[string]any:
		val, ok := v[seg]
		if !ok {
			return nil, types.ErrFieldNotFound
		}
		return resolveRecursive(remaining, val)

	case []any:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(v) {
			return nil, types.ErrFieldNotFound
		}
		return resolveRecursive(remaining, v[idx])

	default:
		// Scalar or null value but path continues
		return nil, types.ErrFieldNotFound
	}
}
