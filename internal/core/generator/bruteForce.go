package generator

import (
	"context"
	"math"
	"sync"

	"passwordSimBackend/internal/core/domain"
)

// DefaultCeiling bounds brute-force max length. A policy choice to keep the
// worst case finite, not a physical limit.
const DefaultCeiling = 6

// BruteForce enumerates every string of length 1..MaxLength over the
// configured alphabet in odometer order: the rightmost position cycles
// fastest, shorter strings before longer ones.
type BruteForce struct {
	params       domain.AttackParams
	ceiling      int
	progress     float64
	generated    int64
	combinations int64
	mu           sync.RWMutex
	stop         chan struct{}
	stopOnce     sync.Once
}

func NewBruteForce(ceiling int) *BruteForce {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	return &BruteForce{
		ceiling: ceiling,
		stop:    make(chan struct{}),
	}
}

func (b *BruteForce) Start(ctx context.Context) (<-chan string, <-chan error) {
	candidates := make(chan string)
	errs := make(chan error, 1)

	charset := b.params.CharacterSet
	if charset == "" {
		charset = domain.CharsetDefault
	}
	maxLength := b.params.MaxLength
	if maxLength <= 0 {
		maxLength = b.ceiling
	}

	go func() {
		defer close(candidates)
		defer close(errs)

		if maxLength > b.ceiling {
			errs <- domain.ErrLengthLimit
			return
		}

		b.calculateTotalCombinations(charset, maxLength)
		alphabet := []rune(charset)

		for length := 1; length <= maxLength; length++ {
			if !b.enumerateLength(ctx, alphabet, length, candidates) {
				return
			}
		}
	}()

	return candidates, errs
}

// enumerateLength walks all strings of exactly length runes as an odometer:
// indexes[len-1] increments first and carries left. Returns false when the
// run was cancelled.
func (b *BruteForce) enumerateLength(ctx context.Context, alphabet []rune, length int, out chan<- string) bool {
	indexes := make([]int, length)
	buf := make([]rune, length)

	for {
		for i, idx := range indexes {
			buf[i] = alphabet[idx]
		}

		select {
		case out <- string(buf):
			b.advance()
		case <-ctx.Done():
			return false
		case <-b.stop:
			return false
		}

		pos := length - 1
		for pos >= 0 {
			indexes[pos]++
			if indexes[pos] < len(alphabet) {
				break
			}
			indexes[pos] = 0
			pos--
		}
		if pos < 0 {
			return true
		}
	}
}

func (b *BruteForce) calculateTotalCombinations(charset string, maxLength int) {
	size := float64(len([]rune(charset)))
	total := int64(0)
	for length := 1; length <= maxLength; length++ {
		total += int64(math.Pow(size, float64(length)))
	}

	b.mu.Lock()
	b.combinations = total
	b.generated = 0
	b.mu.Unlock()
}

func (b *BruteForce) advance() {
	b.mu.Lock()
	b.generated++
	if b.combinations > 0 {
		b.progress = float64(b.generated) / float64(b.combinations) * 100
	}
	b.mu.Unlock()
}

func (b *BruteForce) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
}

func (b *BruteForce) Progress() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.progress
}

func (b *BruteForce) Name() domain.AttackMethod {
	return domain.MethodBruteForce
}

func (b *BruteForce) SetParams(params domain.AttackParams) {
	b.params = params
}
