package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/edec-tools/peppol-reporting/pkg/adapters"
	"github.com/edec-tools/peppol-reporting/pkg/models/domain"
	storemodels "github.com/edec-tools/peppol-reporting/pkg/models/store"
	"github.com/edec-tools/peppol-reporting/pkg/store/backend"
)

// Dialect selects the placeholder style of the underlying driver.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// rebind rewrites ? placeholders into the dialect's native style.
func (d Dialect) rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$")
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var bootQueries = []string{
	`CREATE TABLE IF NOT EXISTS reporting_items (
		id TEXT PRIMARY KEY,
		exchange_time TEXT NOT NULL,
		exchange_date TEXT NOT NULL,
		direction TEXT NOT NULL,
		sender_scheme TEXT NOT NULL,
		sender_id TEXT NOT NULL,
		receiver_scheme TEXT NOT NULL,
		receiver_id TEXT NOT NULL,
		doc_type_scheme TEXT NOT NULL,
		doc_type_id TEXT NOT NULL,
		process_scheme TEXT NOT NULL,
		process_id TEXT NOT NULL,
		transport_protocol TEXT NOT NULL,
		end_user_country TEXT NOT NULL,
		end_user_id TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reporting_items_exchange_date ON reporting_items (exchange_date)`,
}

// Store persists reporting items in a relational database. It works against
// sqlite for single-node setups and postgres for shared ones; the schema
// keeps dates as ISO text so range scans stay dialect-neutral.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect Dialect) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &Store{db: db, dialect: dialect}, nil
}

// Open connects with the given driver and bootstraps the schema.
func Open(ctx context.Context, driver, dsn string, dialect Dialect) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", driver, err)
	}

	s, err := New(db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// SQLiteFactory adapts Open to the backend registry. The DSN is a database
// file path, or ":memory:" for an ephemeral store.
func SQLiteFactory(cfg backend.Config) (backend.Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("sqlite backend requires a dsn")
	}
	return Open(context.Background(), "sqlite3", cfg.DSN, DialectSQLite)
}

// PostgresFactory adapts Open to the backend registry. The DSN is a
// postgres connection URL.
func PostgresFactory(cfg backend.Config) (backend.Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres backend requires a dsn")
	}
	return Open(context.Background(), "pgx", cfg.DSN, DialectPostgres)
}

// Init creates the reporting item schema if it does not exist yet.
func (s *Store) Init(ctx context.Context) error {
	for _, query := range bootQueries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}

func (s *Store) StoreItem(ctx context.Context, item domain.ReportingItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	rec := adapters.MapReportingItemDomainToStore(item)
	rec.ID = uuid.NewString()

	query := `
		INSERT INTO reporting_items (
			id, exchange_time, exchange_date, direction,
			sender_scheme, sender_id, receiver_scheme, receiver_id,
			doc_type_scheme, doc_type_id, process_scheme, process_id,
			transport_protocol, end_user_country, end_user_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, s.dialect.rebind(query),
		rec.ID,
		rec.ExchangeTime,
		rec.ExchangeDate,
		rec.Direction,
		rec.SenderScheme,
		rec.SenderID,
		rec.ReceiverScheme,
		rec.ReceiverID,
		rec.DocTypeScheme,
		rec.DocTypeID,
		rec.ProcessScheme,
		rec.ProcessID,
		rec.TransportProtocol,
		rec.EndUserCountry,
		rec.EndUserID,
	)
	if err != nil {
		return fmt.Errorf("insert reporting item: %w", err)
	}
	return nil
}

func (s *Store) ForEachItem(ctx context.Context, f backend.Filter, fn func(domain.ReportingItem) error) error {
	logger := zerolog.Ctx(ctx)

	query := `
		SELECT id, exchange_time, direction,
			sender_scheme, sender_id, receiver_scheme, receiver_id,
			doc_type_scheme, doc_type_id, process_scheme, process_id,
			transport_protocol, end_user_country, end_user_id
		FROM reporting_items
		WHERE exchange_date >= ? AND exchange_date <= ?`
	args := []interface{}{
		f.Period.StartDate.Format(domain.DateLayout),
		f.Period.EndDate.Format(domain.DateLayout),
	}
	if f.ServiceProviderID != "" {
		query += `
		AND ((direction = 'Sending' AND sender_id = ?) OR (direction = 'Receiving' AND receiver_id = ?))`
		args = append(args, f.ServiceProviderID, f.ServiceProviderID)
	}
	query += `
		ORDER BY exchange_time, id`

	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(query), args...)
	if err != nil {
		return fmt.Errorf("query reporting items: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close reporting item rows")
		}
	}()

	for rows.Next() {
		var rec storemodels.ReportingItemRecord
		err := rows.Scan(
			&rec.ID,
			&rec.ExchangeTime,
			&rec.Direction,
			&rec.SenderScheme,
			&rec.SenderID,
			&rec.ReceiverScheme,
			&rec.ReceiverID,
			&rec.DocTypeScheme,
			&rec.DocTypeID,
			&rec.ProcessScheme,
			&rec.ProcessID,
			&rec.TransportProtocol,
			&rec.EndUserCountry,
			&rec.EndUserID,
		)
		if err != nil {
			return fmt.Errorf("scan reporting item: %w", err)
		}

		item, err := adapters.MapReportingItemStoreToDomain(rec)
		if err != nil {
			return fmt.Errorf("reporting item %s: %w", rec.ID, err)
		}
		if err := fn(item); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
