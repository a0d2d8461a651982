package domain

// LexiconEntry is one row of the lexicon: an English headword, its Latin root,
// a short definition and the modern descendants of the root.
type LexiconEntry struct {
	ID         int64  `db:"id"`
	Headword   string `db:"en"`
	Root       string `db:"la"`
	Definition string `db:"defn"`
	French     string `db:"fr"`
	Spanish    string `db:"es"`
	Italian    string `db:"it"`
}

// MatchKind tells how a resolution was obtained.
type MatchKind string

const (
	MatchNone  MatchKind = "none"
	MatchExact MatchKind = "exact"
	MatchFuzzy MatchKind = "fuzzy"
)

// String implements fmt.Stringer.
func (m MatchKind) String() string { return string(m) }

// Resolution is the outcome of resolving a list of candidate words.
// Entry is nil when Match is MatchNone.
type Resolution struct {
	Entry *LexiconEntry
	Match MatchKind

	// Candidate is the (possibly trimmed) word that produced the match.
	Candidate string

	// Queries is the number of backing-store queries spent.
	Queries int
}

// Found reports whether the resolution carries an entry.
func (r Resolution) Found() bool {
	return r.Entry != nil && r.Match != MatchNone
}

// NoResolution returns the "no result" value.
func NoResolution(queries int) Resolution {
	return Resolution{Match: MatchNone, Queries: queries}
}
