package l3_service

import (
	"context"
	"edustocks/internal/domain"
	"edustocks/internal/logger"
	l2_service "edustocks/internal/service/l2"
	"fmt"
	"strings"
)

type UserService interface {
	InitializeUser(ctx context.Context, userID, email string) (*UserOverview, error)
}

// UserOverview is everything a client needs right after sign-in.
type UserOverview struct {
	UserID    string
	Email     string
	Portfolio domain.Portfolio
	Progress  domain.UserProgress
}

type userServiceHandler struct {
	LedgerService   l2_service.LedgerService
	ProgressService l2_service.ProgressService
}

func NewUserService(ledgerService l2_service.LedgerService, progressService l2_service.ProgressService) UserService {
	return userServiceHandler{
		LedgerService:   ledgerService,
		ProgressService: progressService,
	}
}

// InitializeUser creates the user's progress and portfolio records when they
// do not exist yet. Calling it again is harmless.
func (h userServiceHandler) InitializeUser(ctx context.Context, userID, email string) (*UserOverview, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.NewError(domain.KindUnauthenticated, "user is not authenticated")
	}

	progress, err := h.ProgressService.GetProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize progress: %w", err)
	}
	portfolio, err := h.LedgerService.GetPortfolio(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize portfolio: %w", err)
	}

	logger.FromContext(ctx).Infof("initialized user %s", userID)

	return &UserOverview{
		UserID:    userID,
		Email:     email,
		Portfolio: *portfolio,
		Progress:  *progress,
	}, nil
}
