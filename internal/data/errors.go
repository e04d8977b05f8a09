package data

import (
	"errors"
	"strings"

	"github.com/robincamp/moviecatalog/internal/biz"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"gorm.io/gorm"
)

// Driver messages for constraint failures that a dialect does not translate itself.
var constraintMessages = []struct {
	fragment string
	target   *kerrors.Error
}{
	{"UNIQUE constraint failed", biz.ErrDuplicate},
	{"Error 1062", biz.ErrDuplicate},
	{"SQLSTATE 23505", biz.ErrDuplicate},
	{"FOREIGN KEY constraint failed", biz.ErrMissingReference},
	{"Error 1452", biz.ErrMissingReference},
	{"SQLSTATE 23503", biz.ErrMissingReference},
	{"CHECK constraint failed", biz.ErrConstraint},
	{"NOT NULL constraint failed", biz.ErrConstraint},
	{"Error 3819", biz.ErrConstraint},
	{"SQLSTATE 23514", biz.ErrConstraint},
	{"SQLSTATE 23502", biz.ErrConstraint},
}

// translateError maps storage failures onto the biz error taxonomy, keeping the
// driver error as cause. Unknown errors pass through unchanged.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return biz.ErrNotFound.WithCause(err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return biz.ErrDuplicate.WithCause(err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return biz.ErrMissingReference.WithCause(err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return biz.ErrConstraint.WithCause(err)
	}
	msg := err.Error()
	for _, m := range constraintMessages {
		if strings.Contains(msg, m.fragment) {
			return m.target.WithCause(err)
		}
	}
	return err
}
