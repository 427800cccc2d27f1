package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/usahaku/scoring-service/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByUsername retrieves a user by username
func (r *Repository) FindUserByUsername(username string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, COALESCE(email, ''), password_hash, created_at
		FROM users
		WHERE username = $1`
	err := r.db.QueryRow(query, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by primary key
func (r *Repository) FindUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, COALESCE(email, ''), password_hash, created_at
		FROM users
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsersWithEmail returns every user that has an email address on file
func (r *Repository) ListUsersWithEmail() ([]models.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE email IS NOT NULL AND email <> ''
		ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return users, nil
}

// CreateTransactions inserts a batch of transactions atomically
func (r *Repository) CreateTransactions(txs []models.Transaction) error {
	dbTx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	query := `
		INSERT INTO transactions (user_id, type, description, amount, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	for i := range txs {
		if err := dbTx.QueryRow(query, txs[i].UserID, txs[i].Type, txs[i].Description, txs[i].Amount, txs[i].Date).
			Scan(&txs[i].ID); err != nil {
			dbTx.Rollback()
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
	}
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transactions: %w", err)
	}
	return nil
}

// FindTransactions returns a user's transactions, optionally filtered by
// type and inclusive date range, ordered by date
func (r *Repository) FindTransactions(userID int64, typeFilter string, start, end *time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, type, description, amount, date
		FROM transactions
		WHERE user_id = $1`
	args := []any{userID}
	if typeFilter != "" {
		args = append(args, typeFilter)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date, id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Description, &tx.Amount, &tx.Date); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return txs, nil
}

// IncomeTransactions returns every income transaction for a user
func (r *Repository) IncomeTransactions(userID int64) ([]models.Transaction, error) {
	return r.FindTransactions(userID, models.TypeIncome, nil, nil)
}

// TotalsByType returns all-time income and expense sums for a user
func (r *Repository) TotalsByType(userID int64) (float64, float64, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = $1`
	var income, expense float64
	if err := r.db.QueryRow(query, userID).Scan(&income, &expense); err != nil {
		return 0, 0, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return income, expense, nil
}

// DailyNetTotals returns per-day net amounts (income minus expense) within
// the inclusive range; days without transactions are absent
func (r *Repository) DailyNetTotals(userID int64, start, end time.Time) ([]models.DailyTotal, error) {
	query := `
		SELECT date, SUM(CASE WHEN type = 'income' THEN amount ELSE -amount END)
		FROM transactions
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		GROUP BY date
		ORDER BY date`
	return r.queryDailyTotals(query, userID, start, end)
}

// DailyExpenseTotals returns per-day expense sums over the whole ledger;
// days without expenses are absent
func (r *Repository) DailyExpenseTotals(userID int64) ([]models.DailyTotal, error) {
	query := `
		SELECT date, SUM(amount)
		FROM transactions
		WHERE user_id = $1 AND type = 'expense'
		GROUP BY date
		ORDER BY date`
	return r.queryDailyTotals(query, userID)
}

func (r *Repository) queryDailyTotals(query string, args ...any) ([]models.DailyTotal, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily totals: %w", err)
	}
	defer rows.Close()

	var totals []models.DailyTotal
	for rows.Next() {
		var t models.DailyTotal
		if err := rows.Scan(&t.Date, &t.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan daily total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read daily totals: %w", err)
	}
	return totals, nil
}

// DateExtent returns the earliest and latest transaction dates for a user;
// ok is false when the ledger is empty
func (r *Repository) DateExtent(userID int64) (time.Time, time.Time, bool, error) {
	query := `
		SELECT MIN(date), MAX(date)
		FROM transactions
		WHERE user_id = $1`
	var first, last sql.NullTime
	if err := r.db.QueryRow(query, userID).Scan(&first, &last); err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to query date extent: %w", err)
	}
	if !first.Valid || !last.Valid {
		return time.Time{}, time.Time{}, false, nil
	}
	return first.Time, last.Time, true, nil
}

// RangeSummary returns income, expense and transaction count over the
// inclusive date range
func (r *Repository) RangeSummary(userID int64, start, end time.Time) (float64, float64, int, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0),
			COUNT(*)
		FROM transactions
		WHERE user_id = $1 AND date BETWEEN $2 AND $3`
	var income, expense float64
	var count int
	if err := r.db.QueryRow(query, userID, start, end).Scan(&income, &expense, &count); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to summarize range: %w", err)
	}
	return income, expense, count, nil
}

// ChartTotals returns income and expense sums grouped by the given period
// expression label
func (r *Repository) ChartTotals(userID int64, periodExpr string, start, end *time.Time) ([]models.ChartPoint, error) {
	query := fmt.Sprintf(`
		SELECT %s AS period,
			SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END),
			SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END)
		FROM transactions
		WHERE user_id = $1`, periodExpr)
	args := []any{userID}
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " GROUP BY period ORDER BY period"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chart totals: %w", err)
	}
	defer rows.Close()

	var points []models.ChartPoint
	for rows.Next() {
		var p models.ChartPoint
		if err := rows.Scan(&p.Period, &p.Income, &p.Expense); err != nil {
			return nil, fmt.Errorf("failed to scan chart point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chart totals: %w", err)
	}
	return points, nil
}
