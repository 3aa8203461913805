package filter

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/solatis/querybuilder/internal/types"
)

func TestToCanonicalPath(t *testing.T) {
	tests := []struct {
		name     string
		marker   string
		readable string
		want     string
	}{
		{name: "two segments", readable: "Address in Client", want: "Client.Address"},
		{name: "three segments", readable: "Street in Address in Client", want: "Client.Address.Street"},
		{name: "single segment", readable: "Name", want: "Name"},
		{name: "surrounding whitespace", readable: "  Name  ", want: "Name"},
		{name: "whitespace inside segment", readable: "First Name in Client", want: "Client.FirstName"},
		{name: "already canonical", readable: "Client.Address", want: "Address.Client"},
		{name: "custom marker", marker: "em", readable: "title em movie em movies", want: "movies.movie.title"},
		{name: "marker must be space delimited", readable: "Domain in Client", want: "Client.Domain"},
		{name: "empty", readable: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPathNormalizer(tt.marker).ToCanonicalPath(tt.readable)
			if got != tt.want {
				t.Errorf("ToCanonicalPath(%q) = %q, want %q", tt.readable, got, tt.want)
			}
		})
	}
}

func TestToReadablePath(t *testing.T) {
	tests := []struct {
		name      string
		marker    string
		canonical string
		want      string
	}{
		{name: "two segments", canonical: "Client.Address", want: "Address in Client"},
		{name: "single segment", canonical: "Name", want: "Name"},
		{name: "custom marker", marker: "em", canonical: "movies.movie.title", want: "title em movie em movies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPathNormalizer(tt.marker).ToReadablePath(tt.canonical)
			if got != tt.want {
				t.Errorf("ToReadablePath(%q) = %q, want %q", tt.canonical, got, tt.want)
			}
		})
	}
}

func TestPackageLevelPathHelpers(t *testing.T) {
	if got := ToCanonicalPath("Address in Client"); got != "Client.Address" {
		t.Errorf("ToCanonicalPath() = %q, want %q", got, "Client.Address")
	}
	if got := ToReadablePath("Client.Address"); got != "Address in Client" {
		t.Errorf("ToReadablePath() = %q, want %q", got, "Address in Client")
	}
}

func TestCanonicalProjection(t *testing.T) {
	p := NewPathNormalizer("")
	got := p.CanonicalProjection([]string{"Name in Client", "Age"})
	want := []string{"Client.Name", "Age"}
	if len(got) != len(want) {
		t.Fatalf("CanonicalProjection() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CanonicalProjection()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		data     string
		expected any
		wantErr  error
	}{
		{
			name:     "nested object traversal",
			path:     "movies.movie.title",
			data:     `{"movies": {"movie": {"title": "Heat"}}}`,
			expected: "Heat",
		},
		{
			name:     "array index access",
			path:     "users.0.name",
			data:     `{"users": [{"name": "Bob"}]}`,
			expected: "Bob",
		},
		{
			name:    "missing field",
			path:    "user.email",
			data:    `{"user": {"name": "Alice"}}`,
			wantErr: types.ErrFieldNotFound,
		},
		{
			name:    "index out of bounds",
			path:    "users.3",
			data:    `{"users": []}`,
			wantErr: types.ErrFieldNotFound,
		},
		{
			name:    "non numeric index",
			path:    "users.first",
			data:    `{"users": [1]}`,
			wantErr: types.ErrFieldNotFound,
		},
		{
			name:    "path continues past scalar",
			path:    "a.b",
			data:    `{"a": 1}`,
			wantErr: types.ErrFieldNotFound,
		},
		{
			name:    "path too deep",
			path:    strings.Repeat("a.", types.MaxPathDepth) + "a",
			data:    `{}`,
			wantErr: types.ErrPathTooDeep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data any
			if err := json.Unmarshal([]byte(tt.data), &data); err != nil {
				t.Fatalf("json.Unmarshal() error = %v, want nil", err)
			}
			got, err := Resolve(tt.path, data)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got != tt.expected {
				t.Errorf("Resolve() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

// segmentGen produces whitespace-free identifiers that never equal the marker.
func segmentGen() gopter.Gen {
	return gen.Identifier().SuchThat(func(s string) bool { return s != DefaultMarker })
}

// Property-based test: readable(canonical(x)) is stable after one application
func TestPathNormalizer_PropertyRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("canonical and readable forms invert each other", prop.ForAll(
		func(segments []string) bool {
			if len(segments) == 0 {
				return true
			}
			readable := strings.Join(segments, " in ")
			canonical := ToCanonicalPath(readable)
			return ToReadablePath(canonical) == readable && ToCanonicalPath(ToReadablePath(canonical)) == canonical
		},
		gen.SliceOfN(4, segmentGen()),
	))

	properties.Property("canonical form has no whitespace", prop.ForAll(
		func(readable string) bool {
			return !strings.ContainsAny(ToCanonicalPath(readable), " \t\n")
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
