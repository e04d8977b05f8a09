package data

import (
	"context"
	"fmt"

	"github.com/robincamp/moviecatalog/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
)

// termRow is the shape shared by genres, skills and role_types
type termRow struct {
	ID   uint
	Name string
}

func termsToBiz(rows []termRow) []*biz.Term {
	terms := make([]*biz.Term, 0, len(rows))
	for _, row := range rows {
		terms = append(terms, &biz.Term{ID: row.ID, Name: row.Name})
	}
	return terms
}

func vocabularyTable(vocab biz.Vocabulary) (string, error) {
	switch vocab {
	case biz.VocabularyGenre:
		return Genre{}.TableName(), nil
	case biz.VocabularySkill:
		return Skill{}.TableName(), nil
	case biz.VocabularyRoleType:
		return RoleType{}.TableName(), nil
	}
	return "", fmt.Errorf("vocabulary %q: %w", vocab, biz.ErrInvalidArgument)
}

type vocabularyRepo struct {
	data *Data
	log  *log.Helper
}

// NewVocabularyRepo creates a repository over the genre, skill and role type tables
func NewVocabularyRepo(data *Data, logger log.Logger) biz.VocabularyRepo {
	return &vocabularyRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *vocabularyRepo) CreateTerm(ctx context.Context, vocab biz.Vocabulary, term *biz.Term) error {
	db := r.data.db.WithContext(ctx)

	var err error
	switch vocab {
	case biz.VocabularyGenre:
		row := &Genre{ID: term.ID, Name: term.Name}
		err = db.Create(row).Error
		term.ID = row.ID
	case biz.VocabularySkill:
		row := &Skill{ID: term.ID, Name: term.Name}
		err = db.Create(row).Error
		term.ID = row.ID
	case biz.VocabularyRoleType:
		row := &RoleType{ID: term.ID, Name: term.Name}
		err = db.Create(row).Error
		term.ID = row.ID
	default:
		_, err = vocabularyTable(vocab)
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", vocab, translateError(err))
	}
	return nil
}

func (r *vocabularyRepo) ListTerms(ctx context.Context, vocab biz.Vocabulary) ([]*biz.Term, error) {
	table, err := vocabularyTable(vocab)
	if err != nil {
		return nil, err
	}
	var rows []termRow
	if err := r.data.db.WithContext(ctx).Table(table).Select("id, name").Order("name").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, translateError(err))
	}
	return termsToBiz(rows), nil
}

func (r *vocabularyRepo) GetTermByName(ctx context.Context, vocab biz.Vocabulary, name string) (*biz.Term, error) {
	table, err := vocabularyTable(vocab)
	if err != nil {
		return nil, err
	}
	var row termRow
	if err := r.data.db.WithContext(ctx).Table(table).Where("name = ?", name).Take(&row).Error; err != nil {
		return nil, fmt.Errorf("%s %q: %w", vocab, name, translateError(err))
	}
	return &biz.Term{ID: row.ID, Name: row.Name}, nil
}

func (r *vocabularyRepo) DeleteTerm(ctx context.Context, vocab biz.Vocabulary, id uint) error {
	table, err := vocabularyTable(vocab)
	if err != nil {
		return err
	}
	result := r.data.db.WithContext(ctx).Table(table).Where("id = ?", id).Delete(&termRow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", vocab, translateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %d: %w", vocab, id, biz.ErrNotFound)
	}
	return nil
}
