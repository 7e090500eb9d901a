package service

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"time"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/repository"
	"coursefund-backend/internal/storage"
)

const presignedURLExpiry = 15 * time.Minute

type documentService struct {
	docRepo     repository.DocumentRepository
	requestRepo repository.FundingRequestRepository
	backend     storage.StorageBackend
}

func NewDocumentService(docRepo repository.DocumentRepository, requestRepo repository.FundingRequestRepository, backend storage.StorageBackend) DocumentService {
	return &documentService{
		docRepo:     docRepo,
		requestRepo: requestRepo,
		backend:     backend,
	}
}

func (s *documentService) GetUploadURL(ctx context.Context, principal domain.Principal, filename string, requestID *int32) (*domain.Document, string, error) {
	if !principal.Is(domain.UserRoleStudent) {
		return nil, "", domain.ErrUnauthorized
	}
	if filename == "" {
		verr := domain.NewValidationError()
		verr.Add("filename", "is required")
		return nil, "", verr
	}

	// Documents may only be attached to the caller's own requests.
	if requestID != nil {
		req, err := s.requestRepo.GetByID(ctx, *requestID)
		if err != nil {
			return nil, "", err
		}
		if req.RequesterID != principal.UserID {
			return nil, "", domain.ErrUnauthorized
		}
	}

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Keyed by owner id and filename.
	key := fmt.Sprintf("%d/%s", principal.UserID, filename)

	doc := &domain.Document{
		OwnerID:     principal.UserID,
		RequestID:   requestID,
		FileName:    filename,
		StorageKey:  key,
		ContentType: contentType,
		Status:      domain.DocumentStatusPending,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, "", err
	}

	uploadURL, err := s.backend.GeneratePresignedUploadURL(ctx, key, contentType, presignedURLExpiry)
	if err != nil {
		return nil, "", err
	}
	return doc, uploadURL, nil
}

func (s *documentService) ConfirmUpload(ctx context.Context, principal domain.Principal, documentID int32) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.OwnerID != principal.UserID {
		return nil, domain.ErrUnauthorized
	}

	exists, size, err := s.backend.FileExists(ctx, doc.StorageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("file %s has not been uploaded yet", doc.FileName)
	}

	if err := s.docRepo.Confirm(ctx, documentID, size); err != nil {
		return nil, err
	}
	doc.Status = domain.DocumentStatusConfirmed
	doc.FileSize = size
	return doc, nil
}

func (s *documentService) GetDownloadURL(ctx context.Context, principal domain.Principal, documentID int32) (string, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return "", err
	}
	// Owners and admins may fetch; donors only see documents on requests
	// through the admin-curated review flow.
	if doc.OwnerID != principal.UserID && !principal.Is(domain.UserRoleAdmin) {
		return "", domain.ErrUnauthorized
	}
	return s.backend.GeneratePresignedDownloadURL(ctx, doc.StorageKey, presignedURLExpiry)
}

func (s *documentService) ListMyDocuments(ctx context.Context, principal domain.Principal) ([]domain.Document, error) {
	return s.docRepo.ListByOwner(ctx, principal.UserID)
}
