package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"

	_ "modernc.org/sqlite"
)

const defaultTimeout = 5 * time.Second

// SQLiteStore implements ledger.Store on a single SQLite file.
type SQLiteStore struct {
	db      *sql.DB
	timeout time.Duration
}

type Option func(*SQLiteStore)

// WithTimeout bounds every store operation.
func WithTimeout(d time.Duration) Option {
	return func(s *SQLiteStore) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewSQLiteStore opens dbPath, creating its directory, and applies the
// embedded migrations.
func NewSQLiteStore(dbPath string, opts ...Option) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows a single writer; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s := &SQLiteStore{db: db, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *SQLiteStore) CreateProperty(ctx context.Context, p core.Property) error {
	if err := p.Validate(); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, insertProperty,
		p.ID, p.Name, string(p.Type), p.ImageURL, formatTime(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpdateProperty(ctx context.Context, p core.Property) error {
	if err := p.Validate(); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, updateProperty, p.Name, string(p.Type), p.ImageURL, p.ID)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	return expectRow(res, "property", p.ID)
}

func (s *SQLiteStore) GetProperty(ctx context.Context, id string) (core.Property, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := scanProperty(s.db.QueryRowContext(ctx, selectProperty, id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Property{}, core.NotFound("property", id)
	}
	if err != nil {
		return core.Property{}, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) ListProperties(ctx context.Context) ([]core.Property, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, listProperties)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	out := make([]core.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteProperty removes the property and its transactions in one SQL
// transaction.
func (s *SQLiteStore) DeleteProperty(ctx context.Context, id string) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer sqlTx.Rollback()

	res, err := sqlTx.ExecContext(ctx, deleteProperty, id)
	if err != nil {
		return 0, fmt.Errorf("delete property: %w", err)
	}
	if err := expectRow(res, "property", id); err != nil {
		return 0, err
	}

	res, err = sqlTx.ExecContext(ctx, deleteTransactionsByProperty, id)
	if err != nil {
		return 0, fmt.Errorf("delete property transactions: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	if err := sqlTx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return int(removed), nil
}

func (s *SQLiteStore) InsertTransaction(ctx context.Context, tx core.Transaction) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	r := core.RecordOf(tx)
	_, err := s.db.ExecContext(ctx, insertTransaction,
		r.ID, r.PropertyID, string(r.Type), nullCategory(r.Category), r.Amount.String(),
		r.Description, string(r.Date), formatTime(r.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpdateTransaction(ctx context.Context, tx core.Transaction) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	r := core.RecordOf(tx)
	res, err := s.db.ExecContext(ctx, updateTransaction,
		r.PropertyID, string(r.Type), nullCategory(r.Category), r.Amount.String(),
		r.Description, string(r.Date), r.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return expectRow(res, "transaction", r.ID)
}

func (s *SQLiteStore) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, selectTransaction, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NotFound("transaction", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

func (s *SQLiteStore) DeleteTransaction(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, deleteTransaction, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return expectRow(res, "transaction", id)
}

func (s *SQLiteStore) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	out := make([]core.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProperty(row scanner) (core.Property, error) {
	var (
		p         core.Property
		typ       string
		createdAt string
	)
	if err := row.Scan(&p.ID, &p.Name, &typ, &p.ImageURL, &createdAt); err != nil {
		return core.Property{}, err
	}
	p.Type = core.PropertyType(typ)
	p.CreatedAt = parseTime(createdAt)
	return p, nil
}

func scanTransaction(row scanner) (core.Transaction, error) {
	var (
		r         core.Record
		typ       string
		category  sql.NullString
		amount    string
		month     string
		createdAt string
	)
	if err := row.Scan(&r.ID, &r.PropertyID, &typ, &category, &amount, &r.Description, &month, &createdAt); err != nil {
		return nil, err
	}
	m, err := core.MoneyFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("transaction %s amount %q: %w", r.ID, amount, err)
	}
	r.Type = core.TransactionType(typ)
	r.Category = core.Category(category.String)
	r.Amount = m
	r.Date = core.MonthKey(month)
	r.CreatedAt = parseTime(createdAt)

	tx, err := r.Transaction()
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", r.ID, err)
	}
	return tx, nil
}

func expectRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.NotFound(kind, id)
	}
	return nil
}

func nullCategory(c core.Category) sql.NullString {
	return sql.NullString{String: string(c), Valid: c != ""}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
