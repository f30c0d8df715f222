package store

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// bestScoreRecord is the msgpack value stored under a best-score key.
type bestScoreRecord struct {
	Score     int       `msgpack:"score"`
	UpdatedAt time.Time `msgpack:"updated_at"`
}

// BestScore adapts a KV to the engine's best-score collaborator. Each game
// id gets its own key.
type BestScore struct {
	kv  KV
	key string
	now func() time.Time
}

// NewBestScore stores the best score for gameID in kv.
func NewBestScore(kv KV, gameID string) *BestScore {
	return &BestScore{kv: kv, key: "best_score/" + gameID, now: time.Now}
}

// LoadBestScore returns 0 when nothing has been saved yet.
func (b *BestScore) LoadBestScore() (int, error) {
	raw, ok := b.kv.Get(b.key)
	if !ok {
		return 0, nil
	}
	var rec bestScoreRecord
	if err := msgpack.Unmarshal(raw, &rec); err != nil {
		return 0, fmt.Errorf("decode %s: %w", b.key, err)
	}
	return rec.Score, nil
}

func (b *BestScore) SaveBestScore(score int) error {
	raw, err := msgpack.Marshal(&bestScoreRecord{Score: score, UpdatedAt: b.now().UTC()})
	if err != nil {
		return fmt.Errorf("encode %s: %w", b.key, err)
	}
	if err := b.kv.Put(b.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", b.key, err)
	}
	return nil
}
