package postgres

import (
	"context"
	"database/sql"
	"time"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, phone_number, password_hash, name, role, school, field_of_study, organization, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		u.Email, u.PhoneNumber, u.PasswordHash, u.Name, u.Role,
		u.School, u.FieldOfStudy, u.Organization, now, now).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	var createdOn, updatedOn time.Time
	query := `SELECT id, email, COALESCE(phone_number, ''), password_hash, name, role,
	                 COALESCE(school, ''), COALESCE(field_of_study, ''), COALESCE(organization, ''), created_on, updated_on
	          FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.Name, &u.Role,
		&u.School, &u.FieldOfStudy, &u.Organization, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	u.UpdatedOn = updatedOn.Format("2006-01-02")
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	var createdOn, updatedOn time.Time
	query := `SELECT id, email, COALESCE(phone_number, ''), password_hash, name, role,
	                 COALESCE(school, ''), COALESCE(field_of_study, ''), COALESCE(organization, ''), created_on, updated_on
	          FROM users WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.Name, &u.Role,
		&u.School, &u.FieldOfStudy, &u.Organization, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	u.UpdatedOn = updatedOn.Format("2006-01-02")
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	// Role is intentionally absent from the SET list: it is immutable
	// after creation.
	query := `UPDATE users SET email=$1, phone_number=$2, name=$3, school=$4, field_of_study=$5, organization=$6, updated_on=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query,
		u.Email, u.PhoneNumber, u.Name, u.School, u.FieldOfStudy, u.Organization, time.Now(), u.ID)
	return err
}

func (r *userRepository) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	query := `SELECT id, email, COALESCE(phone_number, ''), password_hash, name, role,
	                 COALESCE(school, ''), COALESCE(field_of_study, ''), COALESCE(organization, ''), created_on, updated_on
	          FROM users WHERE role = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&u.ID, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.Name, &u.Role,
			&u.School, &u.FieldOfStudy, &u.Organization, &createdOn, &updatedOn); err != nil {
			return nil, err
		}
		u.CreatedOn = createdOn.Format("2006-01-02")
		u.UpdatedOn = updatedOn.Format("2006-01-02")
		users = append(users, u)
	}
	return users, rows.Err()
}
