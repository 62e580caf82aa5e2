package storage

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// BestScores adapts a Store to the engine's best-score collaborator.
// Each key keeps its own best score, so several players can share one database.
type BestScores struct {
	store  *Store
	key    string
	logger *log.Logger
}

// NewBestScores binds a store to a best-score key. A nil logger discards output.
func NewBestScores(store *Store, key string, logger *log.Logger) *BestScores {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &BestScores{store: store, key: key, logger: logger}
}

// LoadBestScore returns the stored best score. Read failures are logged and
// reported as 0 so that a broken database never stops play.
func (b *BestScores) LoadBestScore() int {
	value, err := b.store.Best(b.key)
	if err != nil {
		b.logger.Warn("could not load best score", "key", b.key, "error", err)
		return 0
	}
	return value
}

// SaveBestScore persists a new best score.
func (b *BestScores) SaveBestScore(value int) error {
	return b.store.SetBest(b.key, value)
}

// Ensure BestScores implements flappy.ScoreStorage
var _ flappy.ScoreStorage = (*BestScores)(nil)
