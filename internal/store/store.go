package store

import (
	"github.com/genricoloni/dailyblessing/internal/domain"
	"go.uber.org/zap"
)

// NewStore opens the on-disk preferences database configured in cfg.
// If it cannot be opened, preferences are kept in memory for this run only.
func NewStore(logger *zap.Logger, cfg domain.Config) domain.KeyValueStore {
	s, err := OpenSQLite(logger, cfg.GetStoreDir())
	if err != nil {
		logger.Warn("Could not open preferences database, favorites and theme will not persist",
			zap.String("dir", cfg.GetStoreDir()),
			zap.Error(err))
		return NewMemoryStore()
	}
	return s
}
