package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/genricoloni/dailyblessing/internal/domain"
	"go.uber.org/zap"
)

const threeQuotesJSON = `[
  {"text": "A", "author": "Alice", "category": "one"},
  {"text": "B", "author": "Bob", "category": "two"},
  {"text": "C", "author": "Carol", "category": "three"}
]`

func TestLoader_Load(t *testing.T) {
	tests := []struct {
		name         string
		file         string
		content      string
		expectTexts  []string
		expectFallbk bool
	}{
		{
			name:        "Success - JSON",
			file:        "quotes.json",
			content:     threeQuotesJSON,
			expectTexts: []string{"A", "B", "C"},
		},
		{
			name: "Success - YAML",
			file: "quotes.yaml",
			content: `
- text: A
  author: Alice
  category: one
- text: B
  author: Bob
  category: two
`,
			expectTexts: []string{"A", "B"},
		},
		{
			name: "Success - TOML",
			file: "quotes.toml",
			content: `
[[quotes]]
text = "A"
author = "Alice"
category = "one"

[[quotes]]
text = "B"
author = "Bob"
category = "two"
`,
			expectTexts: []string{"A", "B"},
		},
		{
			name: "Success - Duplicates Collapsed",
			file: "quotes.json",
			content: `[
  {"text": "A", "author": "Alice", "category": "one"},
  {"text": "A", "author": "Alice", "category": "other"},
  {"text": "A", "author": "Bob", "category": "one"}
]`,
			expectTexts: []string{"A", "A"},
		},
		{
			name:         "Fallback - Missing File",
			file:         "absent.json",
			expectFallbk: true,
		},
		{
			name:         "Fallback - Malformed JSON",
			file:         "quotes.json",
			content:      `[{"text": "A",`,
			expectFallbk: true,
		},
		{
			name:         "Fallback - Object Instead of List",
			file:         "quotes.json",
			content:      `{"text": "A", "author": "Alice", "category": "one"}`,
			expectFallbk: true,
		},
		{
			name:         "Fallback - Missing Author",
			file:         "quotes.json",
			content:      `[{"text": "A", "category": "one"}]`,
			expectFallbk: true,
		},
		{
			name:         "Fallback - Empty List",
			file:         "quotes.json",
			content:      `[]`,
			expectFallbk: true,
		},
		{
			name:         "Fallback - Null Document",
			file:         "quotes.json",
			content:      `null`,
			expectFallbk: true,
		},
		{
			name:         "Fallback - Malformed YAML",
			file:         "quotes.yml",
			content:      "- text: [unterminated",
			expectFallbk: true,
		},
		{
			name:         "Fallback - Oversized",
			file:         "quotes.json",
			content:      "[" + strings.Repeat(" ", _maxCatalogSize) + "]",
			expectFallbk: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{}
			if tt.content != "" {
				fsys[tt.file] = &fstest.MapFile{Data: []byte(tt.content)}
			}

			loader := NewFSLoader(zap.NewNop(), fsys, tt.file)
			got := loader.Load(context.Background())

			if tt.expectFallbk {
				if len(got) != 1 {
					t.Fatalf("expected one-element fallback catalog, got %d records", len(got))
				}
				if got[0] != Example() {
					t.Errorf("expected fallback example, got %+v", got[0])
				}
				return
			}

			if len(got) != len(tt.expectTexts) {
				t.Fatalf("expected %d records, got %d", len(tt.expectTexts), len(got))
			}
			for i, text := range tt.expectTexts {
				if got[i].Text != text {
					t.Errorf("record %d: expected text %q, got %q", i, text, got[i].Text)
				}
			}
		})
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fsys := fstest.MapFS{"quotes.json": &fstest.MapFile{Data: []byte(threeQuotesJSON)}}
	got := NewFSLoader(zap.NewNop(), fsys, "quotes.json").Load(ctx)

	if len(got) != 1 || got[0] != Example() {
		t.Errorf("expected fallback catalog on cancelled context, got %+v", got)
	}
}

func TestLoader_Bundled(t *testing.T) {
	loader := NewLoader(zap.NewNop(), &mockConfig{})
	got := loader.Load(context.Background())

	if len(got) < 2 {
		t.Fatalf("expected bundled catalog with several quotes, got %d", len(got))
	}

	ids := make(map[string]bool)
	for _, q := range got {
		if q.Text == "" || q.Author == "" || q.Category == "" {
			t.Errorf("bundled quote has empty field: %+v", q)
		}
		if ids[q.ID.String()] {
			t.Errorf("duplicate identifier %s", q.ID)
		}
		ids[q.ID.String()] = true
	}
}

func TestLoader_ConfiguredPath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "mine.json")
	if err := os.WriteFile(p, []byte(threeQuotesJSON), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	got := NewLoader(zap.NewNop(), &mockConfig{catalogPath: p}).Load(context.Background())
	if len(got) != 3 || got[2].Author != "Carol" {
		t.Errorf("expected catalog from %s, got %+v", p, got)
	}
}

// TestIdentifiersStable verifies identifiers depend on content, not position
func TestIdentifiersStable(t *testing.T) {
	reordered := `[
  {"text": "C", "author": "Carol", "category": "three"},
  {"text": "A", "author": "Alice", "category": "one"}
]`
	first := NewFSLoader(zap.NewNop(), fstest.MapFS{"q.json": {Data: []byte(threeQuotesJSON)}}, "q.json").Load(context.Background())
	second := NewFSLoader(zap.NewNop(), fstest.MapFS{"q.json": {Data: []byte(reordered)}}, "q.json").Load(context.Background())

	if first[0].ID != second[1].ID {
		t.Errorf("quote A changed identifier across loads: %s vs %s", first[0].ID, second[1].ID)
	}
	if first[2].ID != second[0].ID {
		t.Errorf("quote C changed identifier across loads: %s vs %s", first[2].ID, second[0].ID)
	}
	if first[0].ID == first[1].ID {
		t.Error("distinct quotes share an identifier")
	}
	if got := QuoteID("A", "Alice"); got != first[0].ID {
		t.Errorf("QuoteID mismatch: %s vs %s", got, first[0].ID)
	}
	if got := first[0].ID.Version(); got != 5 {
		t.Errorf("expected name-based (v5) identifier, got version %d", got)
	}
}

// mockConfig is a simple implementation of domain.Config for testing
type mockConfig struct {
	catalogPath string
}

var _ domain.Config = (*mockConfig)(nil)

func (m *mockConfig) GetCatalogPath() string               { return m.catalogPath }
func (m *mockConfig) GetStoreDir() string                  { return "" }
func (m *mockConfig) GetAutoScrollInterval() time.Duration { return 10 * time.Second }
func (m *mockConfig) RemoteEnabled() bool                  { return false }
func (m *mockConfig) GetBusName() string                   { return "" }
