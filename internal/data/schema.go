package data

import (
	"context"
	"fmt"

	"github.com/robincamp/moviecatalog/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
)

type schemaRepo struct {
	data *Data
	log  *log.Helper
}

// NewSchemaRepo creates the repository that migrates, drops and seeds the catalog
func NewSchemaRepo(data *Data, logger log.Logger) biz.SchemaRepo {
	return &schemaRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *schemaRepo) session(ctx context.Context) *gorm.DB {
	db := r.data.db.WithContext(ctx)
	if r.data.driver == DriverMySQL {
		db = db.Set("gorm:table_options", fmt.Sprintf("ENGINE=InnoDB DEFAULT CHARSET=%s COLLATE=%s",
			r.data.dbConf.Charset, r.data.dbConf.Collation))
	}
	return db
}

// Migrate creates the tables one at a time in dependency order; indexes,
// checks and foreign keys come from the model tags.
func (r *schemaRepo) Migrate(ctx context.Context) error {
	db := r.session(ctx)
	for _, model := range schemaModels() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}
	return nil
}

// Drop removes the tables in reverse dependency order
func (r *schemaRepo) Drop(ctx context.Context) error {
	db := r.session(ctx)
	models := schemaModels()
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("failed to drop %T: %w", models[i], err)
		}
	}
	r.data.flushCache(ctx)
	return nil
}

// Seed writes the embedded fixtures in a single transaction
func (r *schemaRepo) Seed(ctx context.Context) ([]biz.TableCount, error) {
	fixtures, err := loadSeedFixtures()
	if err != nil {
		return nil, err
	}

	var counts []biz.TableCount
	err = r.data.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		counts, err = fixtures.insert(tx)
		if err != nil {
			return err
		}
		if r.data.driver == DriverPostgres {
			return syncSequences(tx)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed: %w", translateError(err))
	}

	for _, movie := range fixtures.Movies {
		r.data.forgetMovie(ctx, movie.ID)
		r.data.refreshRanking(ctx, movie.ID)
	}
	return counts, nil
}

// syncSequences moves PostgreSQL identity sequences past explicitly inserted ids.
func syncSequences(tx *gorm.DB) error {
	for _, table := range []string{"users", "movies", "media", "genres", "skills", "role_types", "artists", "reviews"} {
		stmt := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)",
			table)
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to sync sequence of %s: %w", table, err)
		}
	}
	return nil
}
