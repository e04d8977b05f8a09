package data

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/robincamp/moviecatalog/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ProviderSet is data providers. NewUserRepo and NewVocabularyRepo back the
// library use cases; the CLI injector does not reach them.
var ProviderSet = wire.NewSet(
	NewData,
	NewSchemaRepo,
	NewUserRepo,
	NewMovieRepo,
	NewVocabularyRepo,
	NewArtistRepo,
	NewReviewRepo,
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultCharset   = "utf8mb4"
	defaultCollation = "utf8mb4_unicode_ci"
)

var databaseNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Data encapsulates database and cache connections
type Data struct {
	db     *gorm.DB
	rdb    *redis.Client
	driver string
	dbConf *conf.Database
	log    *log.Helper
}

// NewData creates Data instance with database and Redis connections
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	l := log.NewHelper(logger)
	if c == nil || c.Database == nil {
		return nil, nil, fmt.Errorf("database configuration is required")
	}
	dc := withDefaults(c.Database)

	dialector, err := openDialector(dc)
	if err != nil {
		return nil, nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(logger),
	})
	if err != nil {
		l.Errorf("failed to connect to database: %v", err)
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		l.Errorf("failed to get database instance: %v", err)
		return nil, nil, err
	}

	if dc.Driver == DriverSQLite {
		// Each SQLite connection is its own in-memory database and carries its own
		// foreign_keys setting, so the pool is pinned to a single connection.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	} else {
		sqlDB.SetMaxIdleConns(dc.MaxIdleConns)
		sqlDB.SetMaxOpenConns(dc.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(dc.ConnMaxLifetime.AsDuration())
	}

	l.Infof("database connected successfully (driver=%s)", dc.Driver)

	rdb := newRedis(c.Redis, l)

	data := &Data{
		db:     db,
		rdb:    rdb,
		driver: dc.Driver,
		dbConf: dc,
		log:    l,
	}

	cleanup := func() {
		l.Info("closing data resources")
		if data.rdb != nil {
			if err := data.rdb.Close(); err != nil {
				l.Errorf("failed to close redis: %v", err)
			}
		}
		if sqlDB != nil {
			if err := sqlDB.Close(); err != nil {
				l.Errorf("failed to close database: %v", err)
			}
		}
	}

	return data, cleanup, nil
}

func withDefaults(c *conf.Database) *conf.Database {
	dc := *c
	if dc.Driver == "" {
		dc.Driver = DriverSQLite
	}
	if dc.Charset == "" {
		dc.Charset = defaultCharset
	}
	if dc.Collation == "" {
		dc.Collation = defaultCollation
	}
	if dc.MaxIdleConns <= 0 {
		dc.MaxIdleConns = 10
	}
	if dc.MaxOpenConns <= 0 {
		dc.MaxOpenConns = 100
	}
	if dc.ConnMaxLifetime.AsDuration() <= 0 {
		dc.ConnMaxLifetime = conf.Duration{Duration: time.Hour}
	}
	return &dc
}

func openDialector(c *conf.Database) (gorm.Dialector, error) {
	switch c.Driver {
	case DriverSQLite:
		return sqlite.Open(sqliteSource(c.Source)), nil
	case DriverPostgres:
		return postgres.Open(c.Source), nil
	case DriverMySQL:
		server, dsn, name, err := mysqlSources(c)
		if err != nil {
			return nil, err
		}
		serverDB, err := sql.Open("mysql", server)
		if err != nil {
			return nil, fmt.Errorf("failed to open mysql server connection: %w", err)
		}
		defer serverDB.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := ensureDatabase(ctx, serverDB, name, c.Charset, c.Collation); err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// sqliteSource turns on foreign key enforcement for every connection the
// driver opens unless the source already configures it.
func sqliteSource(source string) string {
	if strings.Contains(source, "_foreign_keys=") || strings.Contains(source, "_fk=") {
		return source
	}
	if strings.Contains(source, "?") {
		return source + "&_foreign_keys=1"
	}
	return source + "?_foreign_keys=1"
}

// mysqlSources derives from the configured DSN a server-level DSN (no schema
// selected), the DSN used by the catalog itself and the database name.
func mysqlSources(c *conf.Database) (server, dsn, name string, err error) {
	cfg, err := mysqldriver.ParseDSN(c.Source)
	if err != nil {
		return "", "", "", fmt.Errorf("invalid mysql source: %w", err)
	}
	name = c.Name
	if name == "" {
		name = cfg.DBName
	}
	if !databaseNamePattern.MatchString(name) {
		return "", "", "", fmt.Errorf("invalid mysql database name %q", name)
	}

	cfg.DBName = name
	cfg.ParseTime = true
	cfg.Collation = c.Collation
	dsn = cfg.FormatDSN()

	cfg.DBName = ""
	server = cfg.FormatDSN()
	return server, dsn, name, nil
}

// ensureDatabase creates the catalog database with a unicode-aware character set.
func ensureDatabase(ctx context.Context, db *sql.DB, name, charset, collation string) error {
	stmt := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET %s COLLATE %s", name, charset, collation)
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return nil
}

func newRedis(c *conf.Redis, l *log.Helper) *redis.Client {
	if c == nil || c.Addr == "" {
		l.Info("redis not configured, caching disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         c.Addr,
		ReadTimeout:  c.ReadTimeout.AsDuration(),
		WriteTimeout: c.WriteTimeout.AsDuration(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		l.Warnf("failed to connect to redis: %v", err)
		// Redis is optional, continue without it
		rdb.Close()
		return nil
	}
	l.Info("redis connected successfully")
	return rdb
}
