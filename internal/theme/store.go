package theme

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/genricoloni/dailyblessing/internal/domain"
	"go.uber.org/zap"
)

// Store persists the selected theme as a decimal integer under domain.ThemeKey
type Store struct {
	logger *zap.Logger
	kv     domain.KeyValueStore
}

// NewStore creates a theme store on top of kv
func NewStore(logger *zap.Logger, kv domain.KeyValueStore) *Store {
	return &Store{logger: logger, kv: kv}
}

// Load returns the persisted selection; anything missing or invalid yields ThemeLight
func (s *Store) Load(ctx context.Context) domain.ThemeSelection {
	data, err := s.kv.Get(ctx, domain.ThemeKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Failed to read theme, using default", zap.Error(err))
		}
		return domain.ThemeLight
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		s.logger.Warn("Persisted theme is not an integer, using default",
			zap.ByteString("value", data))
		return domain.ThemeLight
	}

	sel := domain.ThemeSelection(n)
	if !sel.Valid() {
		s.logger.Warn("Persisted theme is out of range, using default", zap.Int("value", n))
		return domain.ThemeLight
	}
	return sel
}

// Save overwrites the persisted selection
func (s *Store) Save(ctx context.Context, sel domain.ThemeSelection) error {
	if err := s.kv.Set(ctx, domain.ThemeKey, []byte(strconv.Itoa(int(sel)))); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}
