package theme

import (
	"context"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/genricoloni/dailyblessing/internal/domain"
	"github.com/genricoloni/dailyblessing/internal/domain/mocks"
	"github.com/genricoloni/dailyblessing/internal/store"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestStore_Load(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*mocks.MockKeyValueStore)
		expected  domain.ThemeSelection
	}{
		{
			name: "Missing Key Defaults to Light",
			setupMock: func(m *mocks.MockKeyValueStore) {
				m.EXPECT().Get(gomock.Any(), domain.ThemeKey).Return(nil, domain.ErrNotFound)
			},
			expected: domain.ThemeLight,
		},
		{
			name: "Read Error",
			setupMock: func(m *mocks.MockKeyValueStore) {
				m.EXPECT().Get(gomock.Any(), domain.ThemeKey).Return(nil, errors.New("io"))
			},
			expected: domain.ThemeLight,
		},
		{
			name: "Dark",
			setupMock: func(m *mocks.MockKeyValueStore) {
				m.EXPECT().Get(gomock.Any(), domain.ThemeKey).Return([]byte("1"), nil)
			},
			expected: domain.ThemeDark,
		},
		{
			name: "Colorful With Whitespace",
			setupMock: func(m *mocks.MockKeyValueStore) {
				m.EXPECT().Get(gomock.Any(), domain.ThemeKey).Return([]byte(" 2\n"), nil)
			},
			expected: domain.ThemeColorful,
		},
		{
			name: "Not an Integer",
			setupMock: func(m *mocks.MockKeyValueStore) {
				m.EXPECT().Get(gomock.Any(), domain.ThemeKey).Return([]byte(`{"id":1}`), nil)
			},
			expected: domain.ThemeLight,
		},
		{
			name: "Out of Range",
			setupMock: func(m *mocks.MockKeyValueStore) {
				m.EXPECT().Get(gomock.Any(), domain.ThemeKey).Return([]byte("7"), nil)
			},
			expected: domain.ThemeLight,
		},
		{
			name: "Negative",
			setupMock: func(m *mocks.MockKeyValueStore) {
				m.EXPECT().Get(gomock.Any(), domain.ThemeKey).Return([]byte("-1"), nil)
			},
			expected: domain.ThemeLight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			kv := mocks.NewMockKeyValueStore(ctrl)
			tt.setupMock(kv)

			if got := NewStore(zap.NewNop(), kv).Load(context.Background()); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore(zap.NewNop(), store.NewMemoryStore())

	for _, sel := range []domain.ThemeSelection{domain.ThemeDark, domain.ThemeColorful, domain.ThemeLight} {
		if err := s.Save(ctx, sel); err != nil {
			t.Fatalf("Save(%v) failed: %v", sel, err)
		}
		if got := s.Load(ctx); got != sel {
			t.Errorf("expected %v after round trip, got %v", sel, got)
		}
	}
}

func TestStore_SaveWritesRawInteger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	kv := mocks.NewMockKeyValueStore(ctrl)
	kv.EXPECT().Set(gomock.Any(), domain.ThemeKey, []byte("2")).Return(nil)

	if err := NewStore(zap.NewNop(), kv).Save(context.Background(), domain.ThemeColorful); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		sel      domain.ThemeSelection
		name     string
		prefDark bool
	}{
		{domain.ThemeLight, "Pure Serenity", false},
		{domain.ThemeDark, "Midnight Calm", true},
		{domain.ThemeColorful, "Hope & Harmony", false},
		{domain.ThemeSelection(42), "Pure Serenity", false},
	}

	for _, tt := range tests {
		def := Lookup(tt.sel)
		if def.Name != tt.name {
			t.Errorf("Lookup(%d): expected %q, got %q", tt.sel, tt.name, def.Name)
		}
		if def.PrefersDark() != tt.prefDark {
			t.Errorf("Lookup(%d).PrefersDark(): expected %v", tt.sel, tt.prefDark)
		}
	}
}

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 3 {
		t.Fatalf("expected 3 themes, got %d", len(all))
	}
	for i, def := range all {
		if int(def.ID) != i {
			t.Errorf("theme at %d has id %d", i, def.ID)
		}
		if _, err := ParseColor(def.Text); err != nil {
			t.Errorf("theme %q has bad text color: %v", def.Name, err)
		}
		if _, err := ParseColor(def.Accent); err != nil {
			t.Errorf("theme %q has bad accent color: %v", def.Name, err)
		}
		if _, err := Gradient(def.Gradient); err != nil {
			t.Errorf("theme %q has bad gradient: %v", def.Name, err)
		}
	}

	// Mutating a returned definition must not leak into the built-ins
	all[2].Gradient[0] = "#000000"
	if Lookup(domain.ThemeColorful).Gradient[0] != "#6A5AE0" {
		t.Error("built-in gradient was modified through All()")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		spec          string
		expected      color.RGBA
		expectedError string
	}{
		{"#F6F7F9", color.RGBA{R: 0xF6, G: 0xF7, B: 0xF9, A: 0xFF}, ""},
		{"1a1a1a", color.RGBA{R: 0x1A, G: 0x1A, B: 0x1A, A: 0xFF}, ""},
		{"#fff", color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, ""},
		{"#1F0", color.RGBA{R: 0x11, G: 0xFF, B: 0x00, A: 0xFF}, ""},
		{"#80FF0000", color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0x80}, ""},
		{" #6A-5A-E0 ", color.RGBA{R: 0x6A, G: 0x5A, B: 0xE0, A: 0xFF}, ""},
		{"", color.RGBA{}, "empty color spec"},
		{"#", color.RGBA{}, "empty color spec"},
		{"#12345", color.RGBA{}, "must have 3, 6 or 8 hex digits"},
		{"#GGGGGG", color.RGBA{}, "invalid color spec"},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.spec)
		if tt.expectedError != "" {
			if err == nil {
				t.Errorf("ParseColor(%q): expected error containing '%s', got nil", tt.spec, tt.expectedError)
				continue
			}
			if !strings.Contains(err.Error(), tt.expectedError) {
				t.Errorf("ParseColor(%q): expected error '%s' to contain '%s'", tt.spec, err.Error(), tt.expectedError)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q): unexpected error: %v", tt.spec, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseColor(%q): expected %+v, got %+v", tt.spec, tt.expected, got)
		}
	}
}

func TestGradient_Error(t *testing.T) {
	_, err := Gradient([]string{"#FFFFFF", "nope"})
	if err == nil || !strings.Contains(err.Error(), "gradient stop 1") {
		t.Errorf("expected error for stop 1, got %v", err)
	}
}
