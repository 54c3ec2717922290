package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/emberwake/merch-cart/internal/api/middleware"
	"github.com/emberwake/merch-cart/internal/errors"
	"github.com/emberwake/merch-cart/internal/models"
	repository "github.com/emberwake/merch-cart/internal/repositories"
)

type ModeService interface {
	Resolve(ctx context.Context, session string) (*models.ModeStatus, error)
	SetDemo(ctx context.Context, session string, demo bool) (*models.ModeStatus, error)
}

type modeService struct {
	repo       repository.ModeRepository
	configured bool
	warnOnce   sync.Once
}

// NewModeService decides between live and demo per session. configured
// reports whether storefront credentials are usable.
func NewModeService(repo repository.ModeRepository, configured bool) ModeService {
	return &modeService{repo: repo, configured: configured}
}

func (s *modeService) Resolve(ctx context.Context, session string) (*models.ModeStatus, error) {

	demo, set, err := s.repo.DemoFlag(ctx, session)
	if err != nil {
		return nil, errors.NetworkFailureError(errors.MsgNetworkError).WithError(err)
	}

	if !s.configured {
		s.warnOnce.Do(func() {
			middleware.LoggerFromContext(ctx).Warn("Storefront not configured, serving demo catalog",
				slog.String("code", errors.ErrCodeConfigurationMissing))
		})
		return s.status(models.ModeDemo), nil
	}

	if set && demo {
		return s.status(models.ModeDemo), nil
	}

	return s.status(models.ModeLive), nil
}

func (s *modeService) SetDemo(ctx context.Context, session string, demo bool) (*models.ModeStatus, error) {

	if !demo && !s.configured {
		return nil, errors.ConfigurationMissingError("Storefront is not configured; live mode is unavailable")
	}

	if err := s.repo.SetDemoFlag(ctx, session, demo); err != nil {
		return nil, errors.NetworkFailureError(errors.MsgNetworkError).WithError(err)
	}

	if demo {
		return s.status(models.ModeDemo), nil
	}

	return s.status(models.ModeLive), nil
}

func (s *modeService) status(mode models.Mode) *models.ModeStatus {
	return &models.ModeStatus{Mode: mode, StorefrontConfigured: s.configured}
}
