package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"certhub/internal/certification/models"
	"certhub/pkg/platform/sentinel"
	"certhub/pkg/platform/tx"
)

// PostgresStore persists courses in the courses table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, course *models.Course) error {
	q := tx.Conn(ctx, s.db)
	if course.ID().IsZero() {
		var id int64
		err := q.QueryRowContext(ctx,
			`INSERT INTO courses (title, duration_hours, category) VALUES ($1, $2, $3) RETURNING id`,
			course.Title(), course.DurationHours(), course.Category(),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert course: %w", err)
		}
		return course.AssignID(models.CourseID(id))
	}

	res, err := q.ExecContext(ctx,
		`UPDATE courses SET title = $2, duration_hours = $3, category = $4 WHERE id = $1`,
		int64(course.ID()), course.Title(), course.DurationHours(), course.Category(),
	)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id models.CourseID) (*models.Course, error) {
	var (
		title    string
		hours    int
		category string
	)
	err := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT title, duration_hours, category FROM courses WHERE id = $1`, int64(id),
	).Scan(&title, &hours, &category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	c := models.HydrateCourse(id, title, hours, category)
	return &c, nil
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]*models.Course, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT id, title, duration_hours, category FROM courses ORDER BY title ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var out []*models.Course
	for rows.Next() {
		var (
			id       int64
			title    string
			hours    int
			category string
		)
		if err := rows.Scan(&id, &title, &hours, &category); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		c := models.HydrateCourse(models.CourseID(id), title, hours, category)
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return out, nil
}
