package biz

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
)

// Valid reports whether v names a known vocabulary.
func (v Vocabulary) Valid() bool {
	switch v {
	case VocabularyGenre, VocabularySkill, VocabularyRoleType:
		return true
	}
	return false
}

// VocabularyUseCase manages genres, skills and role types
type VocabularyUseCase struct {
	repo VocabularyRepo
	log  *log.Helper
}

func NewVocabularyUseCase(repo VocabularyRepo, logger log.Logger) *VocabularyUseCase {
	return &VocabularyUseCase{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

// AddTerm creates a named entry; names are unique per vocabulary
func (uc *VocabularyUseCase) AddTerm(ctx context.Context, vocab Vocabulary, name string) (*Term, error) {
	if !vocab.Valid() {
		return nil, invalidArgument("unknown vocabulary %q", vocab)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidArgument("%s name is required", vocab)
	}
	term := &Term{Name: name}
	if err := uc.repo.CreateTerm(ctx, vocab, term); err != nil {
		return nil, fmt.Errorf("failed to add %s %q: %w", vocab, name, err)
	}
	return term, nil
}

func (uc *VocabularyUseCase) ListTerms(ctx context.Context, vocab Vocabulary) ([]*Term, error) {
	if !vocab.Valid() {
		return nil, invalidArgument("unknown vocabulary %q", vocab)
	}
	terms, err := uc.repo.ListTerms(ctx, vocab)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s terms: %w", vocab, err)
	}
	return terms, nil
}

func (uc *VocabularyUseCase) Lookup(ctx context.Context, vocab Vocabulary, name string) (*Term, error) {
	if !vocab.Valid() {
		return nil, invalidArgument("unknown vocabulary %q", vocab)
	}
	term, err := uc.repo.GetTermByName(ctx, vocab, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s %q: %w", vocab, name, err)
	}
	return term, nil
}

// RemoveTerm deletes a term; association rows pointing at it cascade
func (uc *VocabularyUseCase) RemoveTerm(ctx context.Context, vocab Vocabulary, id uint) error {
	if !vocab.Valid() {
		return invalidArgument("unknown vocabulary %q", vocab)
	}
	if err := uc.repo.DeleteTerm(ctx, vocab, id); err != nil {
		return fmt.Errorf("failed to remove %s %d: %w", vocab, id, err)
	}
	return nil
}
