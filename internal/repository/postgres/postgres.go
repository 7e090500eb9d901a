package postgres

import (
	"database/sql"
	"coursefund-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CourseRepository
	repository.FundingRequestRepository
	repository.LedgerRepository
	repository.NotificationRepository
	repository.DocumentRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                       db,
		UserRepository:           NewUserRepository(db),
		CourseRepository:         NewCourseRepository(db),
		FundingRequestRepository: NewFundingRequestRepository(db),
		LedgerRepository:         NewLedgerRepository(db),
		NotificationRepository:   NewNotificationRepository(db),
		DocumentRepository:       NewDocumentRepository(db),
	}
}
