package service

import (
	"context"

	"github.com/AminePrince/bmsbackend/internal/clock"
	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/repository"
)

const defaultNotificationPageSize = 20

type notificationService struct {
	repo repository.NotificationRepository
	clk  clock.Clock
}

func NewNotificationService(repo repository.NotificationRepository, clk clock.Clock) NotificationService {
	return &notificationService{repo: repo, clk: clk}
}

func (s *notificationService) Notify(ctx context.Context, userID int32, title, message string, category domain.NotificationCategory) (*domain.Notification, error) {
	if title == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "is required"}
	}
	note := &domain.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Category:  category,
		IsRead:    false,
		CreatedAt: s.clk.Now(),
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *notificationService) List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultNotificationPageSize
	}
	offset := (page - 1) * pageSize
	return s.repo.List(ctx, userID, pageSize, offset)
}

// MarkAsRead requires the owning user's id so one user cannot flip another
// user's notifications.
func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}
