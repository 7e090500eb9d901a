package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/repository"
)

type documentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, d *domain.Document) error {
	query := `INSERT INTO documents (owner_id, request_id, file_name, storage_key, content_type, file_size, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		d.OwnerID, d.RequestID, d.FileName, d.StorageKey, d.ContentType, d.FileSize, d.Status, time.Now()).Scan(&d.ID)
}

func (r *documentRepository) GetByID(ctx context.Context, id int32) (*domain.Document, error) {
	d := &domain.Document{}
	var createdOn time.Time
	query := `SELECT id, owner_id, request_id, file_name, storage_key, content_type, file_size, status, created_on
	          FROM documents WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.OwnerID, &d.RequestID, &d.FileName, &d.StorageKey, &d.ContentType, &d.FileSize, &d.Status, &createdOn)
	if err != nil {
		return nil, err
	}
	d.CreatedOn = createdOn.Format("2006-01-02")
	return d, nil
}

func (r *documentRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Document, error) {
	query := `SELECT id, owner_id, request_id, file_name, storage_key, content_type, file_size, status, created_on
	          FROM documents WHERE owner_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var d domain.Document
		var createdOn time.Time
		if err := rows.Scan(&d.ID, &d.OwnerID, &d.RequestID, &d.FileName, &d.StorageKey, &d.ContentType, &d.FileSize, &d.Status, &createdOn); err != nil {
			return nil, err
		}
		d.CreatedOn = createdOn.Format("2006-01-02")
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *documentRepository) Confirm(ctx context.Context, id int32, fileSize int64) error {
	query := `UPDATE documents SET status = $1, file_size = $2 WHERE id = $3 AND status = $4`
	result, err := r.db.ExecContext(ctx, query, domain.DocumentStatusConfirmed, fileSize, id, domain.DocumentStatusPending)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("document %d not found or already confirmed", id)
	}
	return nil
}

func (r *documentRepository) DeleteExpiredPending(ctx context.Context) (int64, error) {
	query := `DELETE FROM documents WHERE status = $1 AND created_on < $2`
	result, err := r.db.ExecContext(ctx, query, domain.DocumentStatusPending, time.Now().Add(-24*time.Hour))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
