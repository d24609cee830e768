package generator

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/duke-git/lancet/v2/strutil"

	"passwordSimBackend/internal/core/domain"
)

// defaultWordlist is the curated base set used when no wordlist file is given.
var defaultWordlist = []string{
	"password", "123456", "qwerty", "admin", "letmein",
	"welcome", "monkey", "dragon", "master", "freedom",
	"hello", "world", "test", "demo", "guest",
}

var (
	numberMutations = []string{"123", "1234", "12345", "123456", "1", "2", "3"}
	symbolMutations = []string{"!", "@", "#", "$", "%", "&", "*"}
)

// Dictionary iterates a fixed wordlist in insertion order, emitting each word
// followed by its mutations. Ordering is word-major: the word itself, the
// capitalized form, number suffixes then prefixes, symbol suffixes then
// prefixes.
type Dictionary struct {
	params         domain.AttackParams
	progress       float64
	mu             sync.RWMutex
	stop           chan struct{}
	stopOnce       sync.Once
	totalWords     int64
	processedWords int64
}

func NewDictionary() *Dictionary {
	return &Dictionary{
		stop: make(chan struct{}),
	}
}

func (d *Dictionary) Start(ctx context.Context) (<-chan string, <-chan error) {
	candidates := make(chan string, 100)
	errs := make(chan error, 1)

	go func() {
		defer close(candidates)
		defer close(errs)

		words, err := d.loadWords()
		if err != nil {
			errs <- err
			return
		}

		atomic.StoreInt64(&d.totalWords, int64(len(words)))

		for _, word := range words {
			if !d.send(ctx, word, candidates) {
				return
			}
			for _, mutation := range Mutations(word) {
				if !d.send(ctx, mutation, candidates) {
					return
				}
			}

			atomic.AddInt64(&d.processedWords, 1)
			d.updateProgress()
		}
	}()

	return candidates, errs
}

// Mutations returns the fixed variation set for one word, in emission order.
func Mutations(word string) []string {
	mutations := make([]string, 0, 1+2*len(numberMutations)+2*len(symbolMutations))
	mutations = append(mutations, strutil.UpperFirst(word))
	for _, num := range numberMutations {
		mutations = append(mutations, word+num, num+word)
	}
	for _, symbol := range symbolMutations {
		mutations = append(mutations, word+symbol, symbol+word)
	}
	return mutations
}

func (d *Dictionary) loadWords() ([]string, error) {
	if d.params.WordlistPath == "" {
		return defaultWordlist, nil
	}

	file, err := os.Open(d.params.WordlistPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	return words, scanner.Err()
}

func (d *Dictionary) send(ctx context.Context, word string, out chan<- string) bool {
	select {
	case out <- word:
		return true
	case <-ctx.Done():
		return false
	case <-d.stop:
		return false
	}
}

func (d *Dictionary) updateProgress() {
	total := atomic.LoadInt64(&d.totalWords)
	if total == 0 {
		return
	}
	processed := atomic.LoadInt64(&d.processedWords)

	d.mu.Lock()
	d.progress = float64(processed) / float64(total) * 100
	d.mu.Unlock()
}

func (d *Dictionary) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
}

func (d *Dictionary) Progress() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.progress
}

func (d *Dictionary) Name() domain.AttackMethod {
	return domain.MethodDictionary
}

func (d *Dictionary) SetParams(params domain.AttackParams) {
	d.params = params
}
