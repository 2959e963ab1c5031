package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/genricoloni/dailyblessing/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store persists the favorite set as a JSON list of identifier strings
// under domain.FavoritesKey
type Store struct {
	logger *zap.Logger
	kv     domain.KeyValueStore
}

// NewStore creates a favorite store on top of kv
func NewStore(logger *zap.Logger, kv domain.KeyValueStore) *Store {
	return &Store{logger: logger, kv: kv}
}

// Load returns the persisted favorites. Unreadable or undecodable values
// yield an empty set; entries that are not valid identifiers are dropped.
func (s *Store) Load(ctx context.Context) domain.FavoriteSet {
	data, err := s.kv.Get(ctx, domain.FavoritesKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Failed to read favorites, starting empty", zap.Error(err))
		}
		return domain.FavoriteSet{}
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("Persisted favorites are corrupt, starting empty", zap.Error(err))
		return domain.FavoriteSet{}
	}

	set := make(domain.FavoriteSet, len(raw))
	for _, str := range raw {
		id, err := uuid.Parse(str)
		if err != nil {
			s.logger.Debug("Dropping invalid favorite identifier", zap.String("value", str))
			continue
		}
		set[id] = struct{}{}
	}

	s.logger.Debug("Favorites loaded", zap.Int("count", len(set)))
	return set
}

// Save overwrites the persisted favorites with set
func (s *Store) Save(ctx context.Context, set domain.FavoriteSet) error {
	data, err := json.Marshal(set.Strings())
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := s.kv.Set(ctx, domain.FavoritesKey, data); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

// Toggle returns a copy of set with id removed if present, inserted otherwise.
// The input set is left untouched.
func Toggle(set domain.FavoriteSet, id uuid.UUID) domain.FavoriteSet {
	out := set.Clone()
	if out.Contains(id) {
		delete(out, id)
	} else {
		out[id] = struct{}{}
	}
	return out
}
