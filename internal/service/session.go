package service

import (
	"context"
	"strings"

	"carrental-portal/internal/domain"
	"carrental-portal/internal/logger"
	"carrental-portal/internal/repository"
)

// sessionService maintains the local sign-in record. It performs no
// credential check; the record only identifies who submits requests.
type sessionService struct {
	sessionRepo repository.SessionRepository
	deps
}

func NewSessionService(sessionRepo repository.SessionRepository, opts ...Option) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		deps:        newDeps(opts),
	}
}

func (s *sessionService) CurrentUser(ctx context.Context) (*domain.CurrentUser, error) {
	return s.sessionRepo.Get(ctx)
}

func (s *sessionService) SignIn(ctx context.Context, user domain.CurrentUser) (*domain.CurrentUser, error) {
	logger.EnterMethod("sessionService.SignIn", "email", user.Email)

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.AccountType == "" {
		user.AccountType = domain.AccountCustomer
	}
	if err := domain.Validate(user); err != nil {
		logger.ExitMethodWithError("sessionService.SignIn", err)
		return nil, err
	}
	user.IsAuthenticated = true
	user.Timestamp = s.now()

	if err := s.sessionRepo.Save(ctx, &user); err != nil {
		logger.ExitMethodWithError("sessionService.SignIn", err)
		return nil, err
	}
	logger.ExitMethod("sessionService.SignIn", "email", user.Email, "accountType", user.AccountType)
	return &user, nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	logger.Info("Signing out current user")
	return s.sessionRepo.Clear(ctx)
}
