// Package search provides a simple, deterministic, concurrency-safe
// in-memory index over student profiles, backing the student search
// endpoint. It is intentionally small and dependency-free:
//
//   - No logging in the library (callers decide how/what to log)
//   - Unicode-aware tokenization over name, kana, nickname, and email
//   - Safe for concurrent readers and writers (snapshot under RWMutex)
//   - Deterministic scoring and sorting (stable order for ties)
//
// Scoring uses Jaccard similarity between the query token set and each
// profile's token set: score = |Q ∩ P| / |Q ∪ P|.
package search

import (
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Result is one ranked hit: the student's UUID-text id and its score.
type Result struct {
	StudentID string
	Score     float64
}

// Index is the minimal interface consumed by the HTTP layer.
type Index interface {
	TopK(query string, k int) []Result
}

// Entry is one indexable student profile.
type Entry struct {
	StudentID string
	Name      string
	KanaName  string
	Nickname  string
	Email     string
}

// StudentIndex is the default Index implementation. The zero value is
// usable; Put and Remove keep it current as students change.
type StudentIndex struct {
	mu   sync.RWMutex
	docs map[string]map[string]struct{} // student id -> token set
}

// NewStudentIndex builds an index over the given entries.
func NewStudentIndex(entries []Entry) *StudentIndex {
	idx := &StudentIndex{docs: make(map[string]map[string]struct{}, len(entries))}
	for _, e := range entries {
		idx.Put(e)
	}
	return idx
}

// Put adds or replaces one student's tokens.
func (idx *StudentIndex) Put(e Entry) {
	toks := tokenize(e.Name + " " + e.KanaName + " " + e.Nickname + " " + e.Email)
	if len(toks) == 0 {
		return
	}
	idx.mu.Lock()
	if idx.docs == nil {
		idx.docs = make(map[string]map[string]struct{})
	}
	idx.docs[e.StudentID] = toks
	idx.mu.Unlock()
}

// Remove drops one student from the index. Unknown ids are ignored.
func (idx *StudentIndex) Remove(studentID string) {
	idx.mu.Lock()
	delete(idx.docs, studentID)
	idx.mu.Unlock()
}

// TopK returns up to k hits for the query, best first. Ties are broken by
// student id so the order is stable across calls.
func (idx *StudentIndex) TopK(query string, k int) []Result {
	q := tokenize(query)
	if len(q) == 0 || k <= 0 {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]Result, 0, len(idx.docs))
	for id, doc := range idx.docs {
		if s := jaccard(q, doc); s > 0 {
			out = append(out, Result{StudentID: id, Score: s})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].StudentID < out[j].StudentID
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// tokenize lower-cases and splits on any rune that is not a letter or
// digit. CJK text has no spaces, so runs of Han/Kana are additionally
// split into single-rune tokens to allow partial name matches.
func tokenize(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, f := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		out[f] = struct{}{}
		for _, r := range f {
			if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) {
				out[string(r)] = struct{}{}
			}
		}
	}
	return out
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	if inter == 0 {
		return 0
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
