// Package query turns raw command text into validated resolver and translator input.
package query

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/dante-lexicon/internal/domain"
)

// Lookup input limits. Fuzzy relaxation spends up to one store query per
// character of each word, so both bound the store work of a single request.
const (
	MaxLookupWords   = 8
	MaxLookupWordLen = 32
)

const (
	lookupPattern    = `^/q\s+[A-Za-z]{2,}`
	tokenPattern     = `^[A-Za-z]{2,}$`
	translatePattern = `^/t ([A-Za-z-]{2,5})[, ]([A-Za-z-]{2,5}) ([\p{L}\p{N}\p{P}\p{S}]{2}[\p{L}\p{N}\p{P}\p{S}\s]*)$`
)

// TranslateRequest is a parsed "/t" command.
type TranslateRequest struct {
	Source domain.Language
	Target domain.Language
	Phrase string
}

// Parser validates the lookup and translate grammars. The patterns are compiled
// once in NewParser; a Parser is safe for concurrent use.
type Parser struct {
	lookup    *regexp.Regexp
	token     *regexp.Regexp
	translate *regexp.Regexp
	isKnown   func(code string) bool
}

// NewParser creates a Parser. isKnown decides whether a language code belongs
// to the translation provider's catalog; nil accepts domain.IsKnownLanguage.
func NewParser(isKnown func(code string) bool) *Parser {
	if isKnown == nil {
		isKnown = domain.IsKnownLanguage
	}
	return &Parser{
		lookup:    regexp.MustCompile(lookupPattern),
		token:     regexp.MustCompile(tokenPattern),
		translate: regexp.MustCompile(translatePattern),
		isKnown:   isKnown,
	}
}

// IsLookupCandidate reports whether text satisfies the lookup grammar.
func (p *Parser) IsLookupCandidate(text string) bool {
	return p.lookup.MatchString(text)
}

// ParseLookup extracts candidate words from a "/q" command.
// Text that does not match the grammar, or that exceeds MaxLookupWords or
// MaxLookupWordLen, yields domain.ErrUsage. Tokens that are not at least two
// ASCII letters are dropped, so the result may be empty.
func (p *Parser) ParseLookup(text string) ([]string, error) {
	if !p.IsLookupCandidate(text) {
		return nil, domain.ErrUsage
	}

	return p.tokens(strings.Fields(strings.TrimPrefix(text, "/q")))
}

// ParseWords applies the lookup token rules to words that did not arrive as a
// "/q" command, such as HTTP query parameters. Each value may hold several
// whitespace-separated words. Input with no non-blank field yields
// domain.ErrUsage, as does input over the lookup limits; otherwise invalid
// tokens are dropped as in ParseLookup.
func (p *Parser) ParseWords(values []string) ([]string, error) {
	var fields []string
	for _, v := range values {
		fields = append(fields, strings.Fields(v)...)
		if len(fields) > MaxLookupWords {
			return nil, domain.ErrUsage
		}
	}
	if len(fields) == 0 {
		return nil, domain.ErrUsage
	}
	return p.tokens(fields)
}

func (p *Parser) tokens(fields []string) ([]string, error) {
	if len(fields) > MaxLookupWords {
		return nil, domain.ErrUsage
	}

	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > MaxLookupWordLen {
			return nil, domain.ErrUsage
		}
		if !p.token.MatchString(f) {
			continue
		}
		words = append(words, strings.ToLower(f))
	}
	return words, nil
}

// ParseTranslate extracts the language pair and phrase from a "/t" command.
func (p *Parser) ParseTranslate(text string) (TranslateRequest, error) {
	m := p.translate.FindStringSubmatch(text)
	if m == nil {
		return TranslateRequest{}, domain.ErrUsage
	}

	src := strings.ToUpper(m[1])
	if !p.isKnown(src) {
		return TranslateRequest{}, domain.ErrUnknownSourceLanguage
	}
	trg := strings.ToUpper(m[2])
	if !p.isKnown(trg) {
		return TranslateRequest{}, domain.ErrUnknownTargetLanguage
	}

	return TranslateRequest{
		Source: domain.Language(src),
		Target: domain.Language(trg),
		Phrase: m[3],
	}, nil
}
