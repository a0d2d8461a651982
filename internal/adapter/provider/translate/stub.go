package translate

import (
	"context"

	"github.com/heartmarshall/dante-lexicon/internal/domain"
)

// Stub stands in for the translation provider when no API key is configured.
type Stub struct{}

// NewStub creates a disabled translation provider.
func NewStub() *Stub { return &Stub{} }

// Translate always fails with domain.ErrTranslationDisabled.
func (s *Stub) Translate(context.Context, domain.Language, domain.Language, string) (domain.Translation, error) {
	return domain.Translation{}, domain.ErrTranslationDisabled
}

// Usage always fails with domain.ErrTranslationDisabled.
func (s *Stub) Usage(context.Context) (domain.Usage, error) {
	return domain.Usage{}, domain.ErrTranslationDisabled
}
