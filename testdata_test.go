package amber_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	amber "github.com/amberlang/amber-ls"
)

var corpusFiles = []string{
	"array.ab",
	"date.ab",
	"env.ab",
	"fs.ab",
	"http.ab",
	"math.ab",
	"text.ab",
}

var corpusDialects = []amber.Dialect{amber.Alpha034, amber.Alpha035, amber.Alpha040}

// TestCorpusParsesCleanlyAtNewestDialect checks that every resource file is
// free of diagnostics under 0.4.0-alpha, the dialect each fixture was
// written against (spec.md §8's snapshot corpus).
func TestCorpusParsesCleanlyAtNewestDialect(t *testing.T) {
	t.Parallel()

	for _, name := range corpusFiles {
		name := name

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			src := readCorpusFile(t, name)
			resp := amber.Parse(src, amber.Alpha040)

			if len(resp.Diagnostics) != 0 {
				t.Fatalf("unexpected diagnostics: %+v", resp.Diagnostics)
			}

			if len(resp.File.Items) == 0 {
				t.Fatal("expected at least one top-level item")
			}
		})
	}
}

// TestCorpusParseIsDeterministic is the structural snapshot property: two
// independent parses of the same source at the same dialect must produce
// byte-for-byte identical trees. Spans are compared too (unlike
// TestRecoveryIdempotence in facade_test.go, which deliberately ignores
// spans) since a clean, diagnostic-free parse should be fully reproducible.
func TestCorpusParseIsDeterministic(t *testing.T) {
	t.Parallel()

	for _, name := range corpusFiles {
		name := name

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			src := readCorpusFile(t, name)

			first := amber.Parse(src, amber.Alpha040)
			second := amber.Parse(src, amber.Alpha040)

			if diff := cmp.Diff(first.File, second.File); diff != "" {
				t.Fatalf("non-deterministic parse (-first +second):\n%s", diff)
			}
		})
	}
}

// TestCorpusNeverPanicsAcrossDialects exercises spec.md §8 invariant 1 (total
// parse, never panics) over every fixture at every dialect, including ones
// that use dialect-gated keywords the older dialects don't reserve — those
// must fall back to plain-identifier parsing without a crash. It checks only
// that each parse returns a non-empty file; diagnostics are not counted.
func TestCorpusNeverPanicsAcrossDialects(t *testing.T) {
	t.Parallel()

	for _, name := range corpusFiles {
		name := name
		src := readCorpusFile(t, name)

		for _, dialect := range corpusDialects {
			dialect := dialect

			t.Run(name+"/"+dialect.String(), func(t *testing.T) {
				t.Parallel()

				resp := amber.Parse(src, dialect)

				if len(resp.File.Items) == 0 {
					t.Fatal("expected a non-empty file even under a stricter dialect")
				}
			})
		}
	}
}

func readCorpusFile(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("reading testdata/%s: %v", name, err)
	}

	return string(data)
}
