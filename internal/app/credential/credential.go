package credential

import (
	"context"
	"sync"

	"github.com/supchaser/postergen/internal/utils/logger"
	"go.uber.org/zap"
)

// SlotName is the key under which the API key is persisted.
const SlotName = "posterApiKey"

// Persister is the optional durable backing of a Store.
type Persister interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, secret string) error
}

// Store holds the generation service API key. The in-memory value is
// authoritative; the persister is only consulted while memory is empty.
type Store struct {
	mu        sync.RWMutex
	secret    string
	persister Persister
}

// NewStore creates a Store. A nil persister keeps the secret in memory only.
func NewStore(persister Persister) *Store {
	return &Store{persister: persister}
}

func (s *Store) Set(ctx context.Context, secret string) {
	const funcName = "Store.Set"

	s.mu.Lock()
	s.secret = secret
	s.mu.Unlock()

	if s.persister == nil {
		return
	}
	if err := s.persister.Save(ctx, secret); err != nil {
		logger.Warn("failed to persist api key",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return
	}

	logger.Debug("api key persisted",
		zap.String("function", funcName),
	)
}

func (s *Store) Get(ctx context.Context) string {
	const funcName = "Store.Get"

	s.mu.RLock()
	secret := s.secret
	s.mu.RUnlock()
	if secret != "" || s.persister == nil {
		return secret
	}

	stored, err := s.persister.Load(ctx)
	if err != nil {
		logger.Warn("failed to load persisted api key",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return ""
	}
	if stored == "" {
		return ""
	}

	s.mu.Lock()
	if s.secret == "" {
		s.secret = stored
	}
	secret = s.secret
	s.mu.Unlock()

	return secret
}
