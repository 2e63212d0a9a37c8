package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"certhub/internal/subscription/models"
	"certhub/pkg/platform/sentinel"
	"certhub/pkg/platform/tx"
)

const (
	pgForeignKeyViolation = "23503"

	subscriptionColumns = `id, user_id, certification_id, type, state, start_date, end_date, auto_renew`
)

// PostgresStore persists subscriptions in the subscriptions table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, sub *models.Subscription) error {
	q := tx.Conn(ctx, s.db)
	if sub.ID().IsZero() {
		var id int64
		err := q.QueryRowContext(ctx,
			`INSERT INTO subscriptions (user_id, certification_id, type, state, start_date, end_date, auto_renew)
			 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			sub.UserID(), sub.CertificationID(), string(sub.Type()), string(sub.State()),
			sub.StartDate(), sub.EndDate(), sub.AutoRenew(),
		).Scan(&id)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
				return fmt.Errorf("certification reference: %w", sentinel.ErrNotFound)
			}
			return fmt.Errorf("insert subscription: %w", err)
		}
		return sub.AssignID(models.SubscriptionID(id))
	}

	res, err := q.ExecContext(ctx,
		`UPDATE subscriptions
		 SET user_id = $2, certification_id = $3, type = $4, state = $5, start_date = $6, end_date = $7, auto_renew = $8
		 WHERE id = $1`,
		int64(sub.ID()), sub.UserID(), sub.CertificationID(), string(sub.Type()), string(sub.State()),
		sub.StartDate(), sub.EndDate(), sub.AutoRenew(),
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id models.SubscriptionID) (*models.Subscription, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, int64(id))
	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return sub, nil
}

func (s *PostgresStore) FindExpiringActiveWithAutoRenew(ctx context.Context, at time.Time) ([]*models.Subscription, error) {
	return s.query(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions
		 WHERE state = 'active' AND auto_renew AND end_date <= $1
		 ORDER BY id`, at)
}

func (s *PostgresStore) FindCancelable(ctx context.Context, at time.Time) ([]*models.Subscription, error) {
	return s.query(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions
		 WHERE end_date <= $1
		   AND (state = 'cancelled' OR (state = 'active' AND NOT auto_renew))
		 ORDER BY id`, at)
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]*models.Subscription, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer rows.Close()

	var out []*models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row scanner) (*models.Subscription, error) {
	var (
		id, userID, certID int64
		subType, state     string
		start, end         time.Time
		autoRenew          bool
	)
	if err := row.Scan(&id, &userID, &certID, &subType, &state, &start, &end, &autoRenew); err != nil {
		return nil, err
	}
	parsedType, err := models.ParseType(subType)
	if err != nil {
		return nil, err
	}
	parsedState, err := models.ParseState(state)
	if err != nil {
		return nil, err
	}
	return models.New(models.SubscriptionID(id), userID, certID, parsedType, parsedState, start.UTC(), end.UTC(), autoRenew)
}
