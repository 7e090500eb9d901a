package service

import (
	"context"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, principal domain.Principal, name, email, phone, school, fieldOfStudy, organization string) error {
	user, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return err
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	if phone != "" {
		user.PhoneNumber = phone
	}
	if school != "" {
		user.School = school
	}
	if fieldOfStudy != "" {
		user.FieldOfStudy = fieldOfStudy
	}
	if organization != "" {
		user.Organization = organization
	}

	return s.userRepo.Update(ctx, user)
}
