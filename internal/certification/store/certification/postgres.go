package certification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"certhub/internal/certification/models"
	"certhub/pkg/platform/sentinel"
	"certhub/pkg/platform/tx"
)

const pgForeignKeyViolation = "23503"

// PostgresStore persists the certification aggregate across the
// certifications, requirement_areas and certification_area_courses tables.
// Save replaces every child row of the aggregate inside one transaction.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, cert *models.Certification) error {
	id := cert.ID()
	err := tx.Run(ctx, s.db, func(ctx context.Context, q *sql.Tx) error {
		if id.IsZero() {
			var newID int64
			err := q.QueryRowContext(ctx,
				`INSERT INTO certifications (name, description, status) VALUES ($1, $2, $3) RETURNING id`,
				cert.Name(), cert.Description(), string(cert.Status()),
			).Scan(&newID)
			if err != nil {
				return fmt.Errorf("insert certification: %w", err)
			}
			id = models.CertificationID(newID)
		} else {
			res, err := q.ExecContext(ctx,
				`UPDATE certifications SET name = $2, description = $3, status = $4 WHERE id = $1`,
				int64(id), cert.Name(), cert.Description(), string(cert.Status()),
			)
			if err != nil {
				return fmt.Errorf("update certification: %w", err)
			}
			if n, err := res.RowsAffected(); err == nil && n == 0 {
				return sentinel.ErrNotFound
			}
		}

		if _, err := q.ExecContext(ctx, `DELETE FROM certification_area_courses WHERE certification_id = $1`, int64(id)); err != nil {
			return fmt.Errorf("clear course links: %w", err)
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM requirement_areas WHERE certification_id = $1`, int64(id)); err != nil {
			return fmt.Errorf("clear requirement areas: %w", err)
		}
		return insertAreas(ctx, q, id, cert.RequirementAreas())
	})
	if err != nil {
		return err
	}
	return cert.AssignID(id)
}

func insertAreas(ctx context.Context, q *sql.Tx, id models.CertificationID, areas []*models.RequirementArea) error {
	var (
		linkAreas     []string
		linkCourses   []int64
		linkPositions []int64
	)
	for pos, area := range areas {
		_, err := q.ExecContext(ctx,
			`INSERT INTO requirement_areas (certification_id, name, requirement_type, requirement_value, position)
			 VALUES ($1, $2, $3, $4, $5)`,
			int64(id), area.Name(), string(area.RequirementType()), area.RequirementValue(), pos,
		)
		if err != nil {
			return fmt.Errorf("insert requirement area %q: %w", area.Name(), err)
		}
		for i, c := range area.Courses() {
			linkAreas = append(linkAreas, area.Name())
			linkCourses = append(linkCourses, int64(c.ID()))
			linkPositions = append(linkPositions, int64(i))
		}
	}
	if len(linkCourses) == 0 {
		return nil
	}

	_, err := q.ExecContext(ctx,
		`INSERT INTO certification_area_courses (certification_id, area_name, course_id, position)
		 SELECT $1, l.area_name, l.course_id, l.position
		 FROM unnest($2::text[], $3::bigint[], $4::int[]) AS l(area_name, course_id, position)`,
		int64(id), pq.Array(linkAreas), pq.Array(linkCourses), pq.Array(linkPositions),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			return fmt.Errorf("link course: %w", sentinel.ErrNotFound)
		}
		return fmt.Errorf("insert course links: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id models.CertificationID) (*models.Certification, error) {
	q := tx.Conn(ctx, s.db)

	var name, description, status string
	err := q.QueryRowContext(ctx,
		`SELECT name, description, status FROM certifications WHERE id = $1`, int64(id),
	).Scan(&name, &description, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find certification: %w", err)
	}
	parsedStatus, err := models.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("certification %d: %w", id, err)
	}

	courses, err := loadLinkedCourses(ctx, q, id)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx,
		`SELECT name, requirement_type, requirement_value FROM requirement_areas
		 WHERE certification_id = $1 ORDER BY position ASC`, int64(id))
	if err != nil {
		return nil, fmt.Errorf("load requirement areas: %w", err)
	}
	defer rows.Close()

	var areas []*models.RequirementArea
	for rows.Next() {
		var (
			areaName, reqType string
			value             int
		)
		if err := rows.Scan(&areaName, &reqType, &value); err != nil {
			return nil, fmt.Errorf("scan requirement area: %w", err)
		}
		parsedType, err := models.ParseRequirementType(reqType)
		if err != nil {
			return nil, fmt.Errorf("requirement area %q: %w", areaName, err)
		}
		areas = append(areas, models.HydrateRequirementArea(areaName, parsedType, value, courses[areaName]))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load requirement areas: %w", err)
	}

	return models.Hydrate(id, name, description, parsedStatus, areas), nil
}

func loadLinkedCourses(ctx context.Context, q tx.Querier, id models.CertificationID) (map[string][]models.Course, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT l.area_name, c.id, c.title, c.duration_hours, c.category
		 FROM certification_area_courses l
		 JOIN courses c ON c.id = l.course_id
		 WHERE l.certification_id = $1
		 ORDER BY l.area_name, l.position`, int64(id))
	if err != nil {
		return nil, fmt.Errorf("load course links: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.Course)
	for rows.Next() {
		var (
			areaName, title, category string
			courseID                  int64
			hours                     int
		)
		if err := rows.Scan(&areaName, &courseID, &title, &hours, &category); err != nil {
			return nil, fmt.Errorf("scan course link: %w", err)
		}
		out[areaName] = append(out[areaName], models.HydrateCourse(models.CourseID(courseID), title, hours, category))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load course links: %w", err)
	}
	return out, nil
}
