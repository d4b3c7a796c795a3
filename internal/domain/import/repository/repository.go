// Package repository persists imported expenses and their default category.
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/statement-importer/internal/domain/expense"
	"github.com/FACorreiaa/statement-importer/pkg/db"
)

// ImportRepository is the storage used by a statement import.
type ImportRepository interface {
	// GetOrCreateCategory returns the id of the user's category with this name,
	// creating it on first use.
	GetOrCreateCategory(ctx context.Context, userID uuid.UUID, name string) (uuid.UUID, error)
	// BulkInsertExpenses stores every expense in one round trip and returns the
	// number of rows written.
	BulkInsertExpenses(ctx context.Context, expenses []*expense.Expense) (int, error)
}

// PostgresImportRepository implements ImportRepository using PostgreSQL
type PostgresImportRepository struct {
	db db.DBTX
}

// NewPostgresImportRepository creates a new PostgreSQL-backed import repository
func NewPostgresImportRepository(conn db.DBTX) *PostgresImportRepository {
	return &PostgresImportRepository{db: conn}
}

var expenseColumns = []string{
	"id", "user_id", "category_id", "description", "amount", "amount_minor", "currency", "expense_date",
}

// GetOrCreateCategory upserts on (user_id, name) so concurrent imports agree on one id.
func (r *PostgresImportRepository) GetOrCreateCategory(ctx context.Context, userID uuid.UUID, name string) (uuid.UUID, error) {
	query := `
		INSERT INTO category (id, user_id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, uuid.New(), userID, name).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to get or create category %q: %w", name, err)
	}
	return id, nil
}

// BulkInsertExpenses copies the expenses into the expense table.
func (r *PostgresImportRepository) BulkInsertExpenses(ctx context.Context, expenses []*expense.Expense) (int, error) {
	if len(expenses) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(expenses))
	for _, e := range expenses {
		minor, err := e.Minor()
		if err != nil {
			return 0, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		rows = append(rows, []any{
			e.ID, e.UserID, e.CategoryID, e.Description, numeric(e.Amount), minor, e.Currency, e.Date,
		})
	}

	n, err := r.db.CopyFrom(ctx, pgx.Identifier{"expense"}, expenseColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("failed to insert expenses: %w", err)
	}
	return int(n), nil
}

func numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}
