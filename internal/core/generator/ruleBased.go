package generator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/duke-git/lancet/v2/strutil"

	"passwordSimBackend/internal/core/domain"
)

var leetReplacements = []struct {
	from string
	to   string
}{
	{"a", "4"}, {"e", "3"}, {"i", "1"},
	{"o", "0"}, {"s", "5"}, {"t", "7"},
}

// RuleBased generates candidates by applying transformation rule categories
// combinatorially to small base word sets. Ordering is rule-major then
// word-minor: each category is exhausted, in declaration order, before the
// next begins. Duplicates within a category are dropped (first occurrence
// wins), so attempt counts are reproducible.
type RuleBased struct {
	progress  float64
	mu        sync.RWMutex
	stop      chan struct{}
	stopOnce  sync.Once
	rules     []func() []string
	ruleCount int
}

func NewRuleBased() *RuleBased {
	r := &RuleBased{
		stop: make(chan struct{}),
	}
	r.rules = []func() []string{
		r.commonPatterns,
		r.keyboardPatterns,
		r.datePatterns,
		r.namePatterns,
		r.leetSpeak,
	}
	r.ruleCount = len(r.rules)
	return r
}

func (r *RuleBased) Start(ctx context.Context) (<-chan string, <-chan error) {
	candidates := make(chan string, 100)
	errs := make(chan error, 1)

	go func() {
		defer close(candidates)
		defer close(errs)

		for i, rule := range r.rules {
			for _, candidate := range slice.Unique(rule()) {
				select {
				case candidates <- candidate:
				case <-ctx.Done():
					return
				case <-r.stop:
					return
				}
			}
			r.setProgress(float64(i+1) / float64(r.ruleCount) * 100)
		}
	}()

	return candidates, errs
}

// commonPatterns: sequential digit runs, repeated characters, common words
// with numeric affixes.
func (r *RuleBased) commonPatterns() []string {
	var patterns []string

	for length := 4; length <= 9; length++ {
		for start := 0; start+length <= 10; start++ {
			var sb strings.Builder
			for i := start; i < start+length; i++ {
				sb.WriteByte(byte('0' + i))
			}
			patterns = append(patterns, sb.String())
		}
	}

	for _, char := range []string{"1", "2", "3", "a", "b", "c"} {
		for length := 4; length <= 8; length++ {
			patterns = append(patterns, strings.Repeat(char, length))
		}
	}

	for _, word := range []string{"password", "admin", "user", "test", "demo"} {
		for num := 0; num < 100; num++ {
			patterns = append(patterns, fmt.Sprintf("%s%d", word, num), fmt.Sprintf("%d%s", num, word))
		}
	}

	return patterns
}

// keyboardPatterns: QWERTY row runs and their reversals, plus number pad runs.
func (r *RuleBased) keyboardPatterns() []string {
	var patterns []string

	for _, row := range []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"} {
		for length := 4; length <= len(row); length++ {
			for start := 0; start+length <= len(row); start++ {
				run := row[start : start+length]
				patterns = append(patterns, run, strutil.Reverse(run))
			}
		}
	}

	numpad := "1234567890"
	for length := 4; length <= 6; length++ {
		for start := 0; start+length <= len(numpad); start++ {
			patterns = append(patterns, numpad[start:start+length])
		}
	}

	return patterns
}

// datePatterns: common years combined with month and day pairs.
func (r *RuleBased) datePatterns() []string {
	var patterns []string

	years := []string{"2024", "2023", "2022", "2021", "2020", "1990", "1980"}

	for _, year := range years {
		patterns = append(patterns, year)
		for month := 1; month <= 12; month++ {
			mm := fmt.Sprintf("%02d", month)
			patterns = append(patterns, mm+year, year+mm)
			for day := 1; day <= 31; day++ {
				dd := fmt.Sprintf("%02d", day)
				patterns = append(patterns, mm+dd+year, year+mm+dd)
			}
		}
	}

	return patterns
}

// namePatterns: common account names with case variants and affixes.
func (r *RuleBased) namePatterns() []string {
	var patterns []string

	for _, name := range []string{"john", "jane", "admin", "user", "test", "demo", "guest"} {
		patterns = append(patterns, name, strutil.UpperFirst(name), strings.ToUpper(name))
		for num := 0; num < 100; num++ {
			patterns = append(patterns, fmt.Sprintf("%s%d", name, num), fmt.Sprintf("%d%s", num, name))
		}
		for _, symbol := range []string{"!", "@", "#", "$", "%"} {
			patterns = append(patterns, name+symbol, symbol+name)
		}
	}

	return patterns
}

// leetSpeak: base words plus their full leet substitution.
func (r *RuleBased) leetSpeak() []string {
	var patterns []string

	for _, word := range []string{"password", "admin", "user", "test"} {
		patterns = append(patterns, word, Leetify(word))
	}

	return patterns
}

// Leetify applies the fixed leet substitution table to a word.
func Leetify(word string) string {
	for _, repl := range leetReplacements {
		word = strings.ReplaceAll(word, repl.from, repl.to)
	}
	return word
}

func (r *RuleBased) setProgress(p float64) {
	r.mu.Lock()
	r.progress = p
	r.mu.Unlock()
}

func (r *RuleBased) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *RuleBased) Progress() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.progress
}

func (r *RuleBased) Name() domain.AttackMethod {
	return domain.MethodRuleBased
}

func (r *RuleBased) SetParams(params domain.AttackParams) {
	// Rule-based generation takes no external parameters; the rule set and
	// ordering are fixed so attempt counts stay reproducible.
	_ = params
}
