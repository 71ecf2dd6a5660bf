// Package database contains the logic for establishing
// connections to the relational store.
//
// The default store is an embedded SQLite file (mattn/go-sqlite3).
// A PostgreSQL deployment is supported through pgx's database/sql
// adapter, which keeps pgx query tracing available.
//
// It handles:
//   - building a DSN from config
//   - opening one shared sqlx handle and tuning its pool
//   - wiring query tracing/logging for pgx (tracelog, nrpgx5)
//   - bootstrapping the schema
package database

import (
	"context"
	"fmt"
	"time"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"

	"github.com/deppfellow/menu-service/internal/config"
	loggerConfig "github.com/deppfellow/menu-service/internal/logger"
)

// Database wraps the shared sqlx handle and a logger.
//
// DB is safe for concurrent use; database/sql manages the pooled connections.
type Database struct {
	DB     *sqlx.DB
	Driver string

	log           *zerolog.Logger
	slowThreshold time.Duration
}

// multiTracer allows chaining multiple pgx tracers.
//
// pgx supports a single Tracer in ConnConfig, so this adapter runs the
// New Relic tracer and the local SQL logger side by side.
type multiTracer struct {
	tracers []pgx.QueryTracer
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		ctx = tracer.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		tracer.TraceQueryEnd(ctx, conn, data)
	}
}

// DatabasePingTimeout is how long startup waits for the first ping.
const DatabasePingTimeout = 10 * time.Second

// New opens the configured store, pings it and bootstraps the schema.
//
// loggerService may be nil; New Relic tracing is attached only when it carries an application.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err = openPostgres(cfg, logger, loggerService)
	default:
		db, err = openSQLite(cfg.Database.Path)
	}
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second)

	database := &Database{
		DB:     db,
		Driver: cfg.Database.Driver,
		log:    logger,
	}
	if cfg.Observability != nil {
		database.slowThreshold = cfg.Observability.Logging.SlowQueryThreshold
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout)
	defer cancel()

	if err := database.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := database.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info().Str("driver", database.Driver).Msg("connected to the database")

	return database, nil
}

// openSQLite opens the embedded store at path.
//
// The busy timeout lets concurrent writers wait for the file lock instead of
// failing with SQLITE_BUSY straight away.
func openSQLite(path string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)

	db, err := sqlx.Open(config.DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return db, nil
}

// openPostgres opens PostgreSQL through pgx's stdlib adapter so the
// tracers configured on the pgx ConnConfig keep working.
func openPostgres(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*sqlx.DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx config: %w", err)
	}

	var tracers []pgx.QueryTracer

	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	// SQL statement logging is noisy, so it is only enabled in local env.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		})
	}

	switch len(tracers) {
	case 0:
	case 1:
		connConfig.Tracer = tracers[0]
	default:
		connConfig.Tracer = &multiTracer{tracers: tracers}
	}

	return sqlx.NewDb(stdlib.OpenDB(*connConfig), config.DriverPostgres), nil
}

// Ping verifies connectivity.
func (db *Database) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}

// ObserveQuery logs statements that took at least the configured slow query threshold.
func (db *Database) ObserveQuery(ctx context.Context, query string, started time.Time) {
	if db.slowThreshold <= 0 {
		return
	}

	elapsed := time.Since(started)
	if elapsed < db.slowThreshold {
		return
	}

	loggerConfig.FromContext(ctx, db.log).Warn().
		Str("query", query).
		Dur("duration", elapsed).
		Dur("threshold", db.slowThreshold).
		Msg("slow query")
}

// Close closes the connection pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	return db.DB.Close()
}
