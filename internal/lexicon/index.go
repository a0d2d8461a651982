// Package lexicon holds the in-memory exact-match index over lexicon headwords.
//
// The index is built once from the full row set and never mutated afterwards,
// so a single *Index can be shared by any number of goroutines without locking.
package lexicon

import (
	"fmt"

	"github.com/heartmarshall/dante-lexicon/internal/domain"
)

const alphabet = 26

// bucket holds the headwords starting with one letter, in load order.
type bucket struct {
	words   []string
	entries map[string]domain.LexiconEntry
}

// Index maps each letter a..z to the headwords beginning with it.
// Every bucket exists, possibly empty.
type Index struct {
	buckets [alphabet]bucket
	size    int
}

// Build creates an index from lexicon rows. A row whose headword is empty,
// does not start with an ASCII letter, or repeats an earlier headword is a
// *domain.DataIntegrityError.
func Build(rows []domain.LexiconEntry) (*Index, error) {
	idx := newIndex()

	for _, row := range rows {
		letter, ok := domain.HeadwordLetter(row.Headword)
		if !ok {
			return nil, fmt.Errorf("build lexicon index: %w", &domain.DataIntegrityError{
				ID:       row.ID,
				Headword: row.Headword,
				Reason:   "headword must start with an ASCII letter",
			})
		}

		b := &idx.buckets[letter-'a']
		if _, dup := b.entries[row.Headword]; dup {
			return nil, fmt.Errorf("build lexicon index: %w", &domain.DataIntegrityError{
				ID:       row.ID,
				Headword: row.Headword,
				Reason:   "duplicate headword",
			})
		}

		b.words = append(b.words, row.Headword)
		b.entries[row.Headword] = row
		idx.size++
	}

	return idx, nil
}

func newIndex() *Index {
	idx := &Index{}
	for i := range idx.buckets {
		idx.buckets[i] = bucket{entries: make(map[string]domain.LexiconEntry)}
	}
	return idx
}

// Lookup reports whether word is stored verbatim in the bucket of its first letter.
func (idx *Index) Lookup(word string) bool {
	_, ok := idx.Entry(word)
	return ok
}

// Entry returns the full record for an exact headword.
func (idx *Index) Entry(word string) (domain.LexiconEntry, bool) {
	letter, ok := domain.HeadwordLetter(word)
	if !ok {
		return domain.LexiconEntry{}, false
	}
	e, ok := idx.buckets[letter-'a'].entries[word]
	return e, ok
}

// Bucket returns a copy of the headwords stored under letter, in load order.
// Letters outside a..z (case-insensitive) yield nil.
func (idx *Index) Bucket(letter rune) []string {
	if letter >= 'A' && letter <= 'Z' {
		letter += 'a' - 'A'
	}
	if letter < 'a' || letter > 'z' {
		return nil
	}
	words := idx.buckets[letter-'a'].words
	out := make([]string, len(words))
	copy(out, words)
	return out
}

// EmptyLetters returns the letters whose bucket holds no headword.
func (idx *Index) EmptyLetters() []rune {
	var empty []rune
	for i := range idx.buckets {
		if len(idx.buckets[i].words) == 0 {
			empty = append(empty, rune('a'+i))
		}
	}
	return empty
}

// Len returns the number of indexed headwords.
func (idx *Index) Len() int { return idx.size }
