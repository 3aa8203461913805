package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/solatis/querybuilder/internal/filter"
	"github.com/solatis/querybuilder/internal/types"
)

const validDraft = `
projection: ["title in movie in movies"]
conditions:
  - attribute: runtime in movie in movies
    operator: GreaterThan
    value: 150
    connector: OR
    groupConnector: AND
    children:
      - {attribute: release_year in movie in movies, operator: LessThan, value: 2000}
  - attribute: genre in movie in movies
    operator: EqualTo
    value: Crime
`

func writeDraft(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draft.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v, want nil", err)
	}
	return path
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCompile_PrintsRequest(t *testing.T) {
	t.Setenv("QB_EXPORT_DIR", t.TempDir())
	out, err := execute(t, "compile", "--send=false", "--out=", writeDraft(t, validDraft))
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}

	var req types.RequestModel
	if err := json.Unmarshal([]byte(out), &req); err != nil {
		t.Fatalf("Unmarshal() error = %v, output %q", err, out)
	}
	want := "movies.movie.runtime gt 150 AND (movies.movie.release_year lt 2000) OR movies.movie.genre eq Crime"
	if req.Filters != want {
		t.Errorf("Filters = %q, want %q", req.Filters, want)
	}
	if len(req.Projection) != 1 || req.Projection[0] != "movies.movie.title" {
		t.Errorf("Projection = %v, want [movies.movie.title]", req.Projection)
	}
}

func TestCompile_SendAndExport(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QB_EXPORT_DIR", dir)
	out, err := execute(t, "compile", "--send=true", "--out=heat", writeDraft(t, validDraft))
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("Unmarshal() error = %v, output %q", err, out)
	}
	if len(rows) == 0 {
		t.Error("rows is empty, want mocked results")
	}
	if _, err := os.Stat(filepath.Join(dir, "heat.json")); err != nil {
		t.Errorf("Stat(heat.json) error = %v, want exported file", err)
	}
}

func TestCompile_RejectsUnknownAttribute(t *testing.T) {
	draft := strings.Replace(validDraft, "genre in movie in movies", "budget in movie in movies", 1)
	_, err := execute(t, "compile", "--send=false", "--out=", writeDraft(t, draft))
	if !errors.Is(err, types.ErrUnknownAttribute) {
		t.Fatalf("Execute() error = %v, want ErrUnknownAttribute", err)
	}
}

func TestCompile_RejectsIncompleteDraft(t *testing.T) {
	draft := strings.Replace(validDraft, "value: Crime", "value: \"\"", 1)
	_, err := execute(t, "compile", "--send=false", "--out=", writeDraft(t, draft))
	if !filter.IsValidationError(err) {
		t.Fatalf("Execute() error = %v, want validation error", err)
	}
	if !errors.Is(err, types.ErrIncompleteCondition) {
		t.Errorf("Execute() error = %v, want ErrIncompleteCondition", err)
	}
}

func TestShow_RendersTree(t *testing.T) {
	out, err := execute(t, "show", writeDraft(t, validDraft))
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	for _, want := range []string{"runtime in movie in movies", "└── ", "ready: "} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSchema_JSON(t *testing.T) {
	out, err := execute(t, "schema", "--output", "json")
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	var info types.SchemaInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(info.Attributes) == 0 {
		t.Error("Attributes is empty, want mock schema")
	}
	if info.Attributes[0].Name != "title in movie in movies" {
		t.Errorf("Attributes[0].Name = %q, want readable name", info.Attributes[0].Name)
	}
}

func TestCompile_RejectsNonIntegerValue(t *testing.T) {
	draft := strings.Replace(validDraft, "value: 150", "value: long", 1)
	_, err := execute(t, "compile", "--send=false", "--out=", writeDraft(t, draft))
	if !errors.Is(err, types.ErrValueTypeMismatch) {
		t.Fatalf("Execute() error = %v, want ErrValueTypeMismatch", err)
	}
}

func TestCompile_AcceptsFieldReferenceValue(t *testing.T) {
	draft := strings.Replace(validDraft, "value: 150", "value: revenue in movie in movies", 1)
	out, err := execute(t, "compile", "--send=false", "--out=", writeDraft(t, draft))
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	var req types.RequestModel
	if err := json.Unmarshal([]byte(out), &req); err != nil {
		t.Fatalf("Unmarshal() error = %v, output %q", err, out)
	}
	if !strings.HasPrefix(req.Filters, "movies.movie.runtime gt revenue in movie in movies AND (") {
		t.Errorf("Filters = %q, want field reference value kept verbatim", req.Filters)
	}
}
