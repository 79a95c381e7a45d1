package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pandhu/duitbot/internal/common"
	"github.com/pandhu/duitbot/internal/model"
	"github.com/pandhu/duitbot/internal/service"
)

// SaveTransaction inserts a single transaction. Amounts are stored as
// decimal strings so no precision is lost crossing the driver boundary.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	createdAt := txn.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (
			id, user_id, type, category, description, amount, date, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		txn.ID,
		txn.UserID,
		string(txn.Type),
		txn.Category,
		txn.Description,
		txn.Amount.String(),
		txn.Date,
		createdAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("transaction %s: %w", txn.ID, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
	}

	return nil
}

// GetTransactions retrieves transactions matching the filter, newest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(filter.UserID, "filter.UserID"); err != nil {
		return nil, err
	}

	var conditions []string
	var args []any

	conditions = append(conditions, "user_id = ?")
	args = append(args, filter.UserID)

	if filter.Type != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.StartDate != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, *filter.EndDate)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, type, category, description, amount, date, created_at
		FROM transactions
		WHERE %s
		ORDER BY date DESC, created_at DESC
	`, strings.Join(conditions, " AND "))

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var txType, amount string
		if err := rows.Scan(&txn.ID, &txn.UserID, &txType, &txn.Category,
			&txn.Description, &amount, &txn.Date, &txn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Type = model.TransactionType(txType)
		txn.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount for transaction %s: %w", txn.ID, err)
		}
		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}

// SumByCategory sums amounts per category for one transaction type within
// a date range.
func (s *SQLiteStorage) SumByCategory(ctx context.Context, userID string, txType model.TransactionType, start, end time.Time) (map[string]decimal.Decimal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %v before start %v", ErrInvalidDateRange, end, start)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, amount
		FROM transactions
		WHERE user_id = ? AND type = ? AND date >= ? AND date <= ?
	`, userID, string(txType), start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query category sums: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// Summation happens in Go so amounts stay exact decimals.
	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var category, amount string
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan category sum: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		sums[category] = sums[category].Add(d)
	}

	return sums, rows.Err()
}

// MonthlyTotals sums amounts per calendar month for one transaction type
// within a date range, oldest month first.
func (s *SQLiteStorage) MonthlyTotals(ctx context.Context, userID string, txType model.TransactionType, start, end time.Time) ([]service.MonthlyTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %v before start %v", ErrInvalidDateRange, end, start)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT CAST(strftime('%Y', date) AS INTEGER) AS year,
		       CAST(strftime('%m', date) AS INTEGER) AS month,
		       amount
		FROM transactions
		WHERE user_id = ? AND type = ? AND date >= ? AND date <= ?
		ORDER BY year, month
	`, userID, string(txType), start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals: %w", mapBusy(err))
	}
	defer func() { _ = rows.Close() }()

	var totals []service.MonthlyTotal
	for rows.Next() {
		var year, month int
		var amount string
		if err := rows.Scan(&year, &month, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}

		if n := len(totals); n > 0 && totals[n-1].Year == year && totals[n-1].Month == time.Month(month) {
			totals[n-1].Total = totals[n-1].Total.Add(d)
			continue
		}
		totals = append(totals, service.MonthlyTotal{
			Year:  year,
			Month: time.Month(month),
			Total: d,
		})
	}

	return totals, rows.Err()
}
