package postgres

import (
	"context"
	"database/sql"
	"time"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/repository"
)

type courseRepository struct {
	db *sql.DB
}

func NewCourseRepository(db *sql.DB) repository.CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, c *domain.Course) error {
	query := `INSERT INTO courses (title, provider, url, cost_cents, approved, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.Title, c.Provider, c.URL, c.CostCents, c.Approved, now, now).Scan(&c.ID)
}

func (r *courseRepository) GetByID(ctx context.Context, id int32) (*domain.Course, error) {
	c := &domain.Course{}
	var createdOn, updatedOn time.Time
	query := `SELECT id, title, provider, COALESCE(url, ''), cost_cents, approved, created_on, updated_on FROM courses WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Title, &c.Provider, &c.URL, &c.CostCents, &c.Approved, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	c.CreatedOn = createdOn.Format("2006-01-02")
	c.UpdatedOn = updatedOn.Format("2006-01-02")
	return c, nil
}

func (r *courseRepository) Update(ctx context.Context, c *domain.Course) error {
	query := `UPDATE courses SET title=$1, provider=$2, url=$3, cost_cents=$4, approved=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, c.Title, c.Provider, c.URL, c.CostCents, c.Approved, time.Now(), c.ID)
	return err
}

func (r *courseRepository) List(ctx context.Context, approvedOnly bool) ([]domain.Course, error) {
	query := `SELECT id, title, provider, COALESCE(url, ''), cost_cents, approved, created_on, updated_on FROM courses`
	if approvedOnly {
		query += ` WHERE approved = TRUE`
	}
	query += ` ORDER BY title`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		var c domain.Course
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&c.ID, &c.Title, &c.Provider, &c.URL, &c.CostCents, &c.Approved, &createdOn, &updatedOn); err != nil {
			return nil, err
		}
		c.CreatedOn = createdOn.Format("2006-01-02")
		c.UpdatedOn = updatedOn.Format("2006-01-02")
		courses = append(courses, c)
	}
	return courses, rows.Err()
}
