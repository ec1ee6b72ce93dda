// Package rotation tracks which candidates have been served per
// (post, comment type) bucket so that no comment repeats within a cycle.
package rotation

import (
	"sync"

	"go.uber.org/zap"

	"github.com/lokvaani/commentengine/internal/random"
	"github.com/lokvaani/commentengine/pkg/logging"
)

// Key identifies a rotation bucket
type Key struct {
	PostID string
	Type   string
}

// bucket is the rotation state of one key. mu guards every field and is
// held across batch computation, pick and markUsed.
type bucket struct {
	mu           sync.Mutex
	used         map[int]struct{}
	currentBatch int
	cursor       int
}

func newBucket() *bucket {
	return &bucket{used: make(map[int]struct{})}
}

func (b *bucket) clear() {
	b.used = make(map[int]struct{})
	b.currentBatch = 0
	b.cursor = 0
}

// Store holds the rotation state of every bucket in memory
type Store struct {
	mu        sync.RWMutex
	buckets   map[Key]*bucket
	batchSize int
	logger    *zap.Logger
}

// NewStore creates an empty store. Batch sizes below 1 are treated as 1.
func NewStore(batchSize int) *Store {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Store{
		buckets:   make(map[Key]*bucket),
		batchSize: batchSize,
		logger:    logging.WithComponent("rotation"),
	}
}

func (s *Store) bucket(key Key) *bucket {
	s.mu.RLock()
	b, ok := s.buckets[key]
	s.mu.RUnlock()
	if ok {
		return b
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok = s.buckets[key]; ok {
		return b
	}
	b = newBucket()
	s.buckets[key] = b
	return b
}

// nextBatch returns the unused global indices of the current batch.
// Callers must hold b.mu.
func (s *Store) nextBatch(b *bucket, key Key, n int) []int {
	if n <= 0 {
		return nil
	}
	totalBatches := (n + s.batchSize - 1) / s.batchSize

	// Every pass either finds an unused index or advances the batch
	// cursor; one extra pass covers the full-cycle clear.
	for attempt := 0; attempt <= totalBatches; attempt++ {
		if len(b.used) >= n {
			b.clear()
		}

		start := (b.currentBatch * s.batchSize) % n
		end := min(start+s.batchSize, n)

		var out []int
		for i := start; i < end; i++ {
			if _, used := b.used[i]; !used {
				out = append(out, i)
			}
		}
		if len(out) > 0 {
			return out
		}
		b.currentBatch = (b.currentBatch + 1) % totalBatches
	}

	s.logger.Error("Rotation retry limit exceeded",
		zap.String("post_id", key.PostID),
		zap.String("type", key.Type),
		zap.Int("eligible", n),
		zap.Int("used", len(b.used)))
	return nil
}

// NextBatch returns the unused indices of the current batch for a pool of
// eligibleCount candidates. The result is empty only for an empty pool.
func (s *Store) NextBatch(key Key, eligibleCount int) []int {
	b := s.bucket(key)
	b.mu.Lock()
	defer b.mu.Unlock()
	return s.nextBatch(b, key, eligibleCount)
}

// MarkUsed records index as served for key
func (s *Store) MarkUsed(key Key, index int) {
	b := s.bucket(key)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.used[index] = struct{}{}
}

// Select picks a random unused index from the current batch and marks it
// used, atomically for key. ok is false for an empty pool.
func (s *Store) Select(key Key, eligibleCount int, rng random.Source) (index int, ok bool) {
	b := s.bucket(key)
	b.mu.Lock()
	defer b.mu.Unlock()

	batch := s.nextBatch(b, key, eligibleCount)
	if len(batch) == 0 {
		return 0, false
	}
	index = random.Choice(rng, batch)
	b.used[index] = struct{}{}
	return index, true
}

// SelectSequential walks the candidates in order, skipping used indices
// and starting over once every index has been served.
func (s *Store) SelectSequential(key Key, eligibleCount int) (index int, ok bool) {
	if eligibleCount <= 0 {
		return 0, false
	}
	b := s.bucket(key)
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.used) >= eligibleCount {
		b.clear()
	}
	// At least one in-range index is unused here, so the walk stops
	// within eligibleCount steps.
	b.cursor %= eligibleCount
	for {
		if _, used := b.used[b.cursor]; !used {
			break
		}
		b.cursor = (b.cursor + 1) % eligibleCount
	}

	index = b.cursor
	b.used[index] = struct{}{}
	b.cursor = (b.cursor + 1) % eligibleCount
	return index, true
}

// Reset clears the state of one key
func (s *Store) Reset(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
}

// ResetAll clears every key
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets = make(map[Key]*bucket)
}

// Len returns the number of tracked keys
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buckets)
}
