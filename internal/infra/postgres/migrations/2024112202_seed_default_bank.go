package migrations

import (
	"context"
	"encoding/json"

	"github.com/uptrace/bun"
	"playstyle-quiz-service/internal/catalog"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			bank := catalog.DefaultBank()
			data, err := json.Marshal(bank)
			if err != nil {
				return err
			}
			_, err = db.ExecContext(ctx,
				`INSERT INTO question_banks (id, data) VALUES (?, ?::jsonb) ON CONFLICT (id) DO NOTHING`,
				bank.ID, string(data))
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DELETE FROM question_banks WHERE id = ?`, catalog.DefaultBankID)
			return err
		},
	)
}
