package service

import (
	"context"
	"strings"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/repository"
)

type courseService struct {
	courseRepo repository.CourseRepository
}

func NewCourseService(courseRepo repository.CourseRepository) CourseService {
	return &courseService{courseRepo: courseRepo}
}

func (s *courseService) AddCourse(ctx context.Context, principal domain.Principal, course *domain.Course) error {
	if !principal.Is(domain.UserRoleAdmin) {
		return domain.ErrUnauthorized
	}

	verr := domain.NewValidationError()
	if strings.TrimSpace(course.Title) == "" {
		verr.Add("title", "is required")
	}
	if strings.TrimSpace(course.Provider) == "" {
		verr.Add("provider", "is required")
	}
	if course.CostCents <= 0 {
		verr.Add("cost_cents", "must be a positive amount")
	}
	if verr.HasErrors() {
		return verr
	}

	return s.courseRepo.Create(ctx, course)
}

func (s *courseService) GetCourse(ctx context.Context, id int32) (*domain.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

func (s *courseService) ListCourses(ctx context.Context, principal domain.Principal) ([]domain.Course, error) {
	// Admins see the whole catalog, everyone else only approved entries.
	approvedOnly := !principal.Is(domain.UserRoleAdmin)
	return s.courseRepo.List(ctx, approvedOnly)
}

func (s *courseService) UpdateCourse(ctx context.Context, principal domain.Principal, course *domain.Course) error {
	if !principal.Is(domain.UserRoleAdmin) {
		return domain.ErrUnauthorized
	}
	return s.courseRepo.Update(ctx, course)
}
