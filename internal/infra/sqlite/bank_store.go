package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
	"playstyle-quiz-service/internal/domain"
	"playstyle-quiz-service/internal/validation"
)

const schema = `
CREATE TABLE IF NOT EXISTS question_banks (
    id         TEXT PRIMARY KEY,
    data       TEXT NOT NULL,
    updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// BankStore keeps question banks in a local SQLite file. It is the bank
// source when no Postgres is configured.
type BankStore struct {
	db *sql.DB
}

func Open(path string) (*BankStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	return &BankStore{db: db}, nil
}

func (s *BankStore) Close() error {
	return s.db.Close()
}

// SaveBank validates and upserts a bank.
func (s *BankStore) SaveBank(ctx context.Context, bank domain.Bank) error {
	if err := validation.ValidateBank(bank); err != nil {
		return err
	}
	data, err := json.Marshal(bank)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO question_banks (id, data) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		bank.ID, string(data))
	return err
}

// SeedBank inserts bank only if no bank with its id exists yet.
func (s *BankStore) SeedBank(ctx context.Context, bank domain.Bank) error {
	data, err := json.Marshal(bank)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO question_banks (id, data) VALUES (?, ?) ON CONFLICT(id) DO NOTHING`,
		bank.ID, string(data))
	return err
}

func (s *BankStore) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM question_banks WHERE id = ?`, bankID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Bank{}, fmt.Errorf("%w: %s", domain.ErrBankNotFound, bankID)
	}
	if err != nil {
		return domain.Bank{}, fmt.Errorf("load question bank: %w", err)
	}
	var bank domain.Bank
	if err := json.Unmarshal([]byte(raw), &bank); err != nil {
		return domain.Bank{}, fmt.Errorf("unmarshal question bank: %w", err)
	}
	if err := validation.ValidateBank(bank); err != nil {
		return domain.Bank{}, fmt.Errorf("question bank %s: %w", bankID, err)
	}
	return bank, nil
}
