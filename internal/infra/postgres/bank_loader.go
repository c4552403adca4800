package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"playstyle-quiz-service/internal/domain"
	"playstyle-quiz-service/internal/validation"
)

// BankLoader loads question bank JSONB from Postgres.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

// LoadBank reads and validates a bank. An invalid bank fails the load.
func (l *BankLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_banks WHERE id=$1`, bankID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Bank{}, fmt.Errorf("%w: %s", domain.ErrBankNotFound, bankID)
	}
	if err != nil {
		return domain.Bank{}, fmt.Errorf("load question bank: %w", err)
	}
	var bank domain.Bank
	if err := json.Unmarshal(raw, &bank); err != nil {
		return domain.Bank{}, fmt.Errorf("unmarshal question bank: %w", err)
	}
	if bank.ID == "" {
		bank.ID = bankID
	}
	if err := validation.ValidateBank(bank); err != nil {
		return domain.Bank{}, fmt.Errorf("question bank %s: %w", bankID, err)
	}
	return bank, nil
}
