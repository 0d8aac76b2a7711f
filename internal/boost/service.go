package boost

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	CreateBoostClient(ctx context.Context, b *BoostClient) error
	GetBoostClient(ctx context.Context, clientID uuid.UUID) (*BoostClient, error)
	ListBoostClients(ctx context.Context) ([]*BoostClient, error)
	UpdateBoostClient(ctx context.Context, b *BoostClient) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// UpdateParams carries partial milestone updates. Nil fields are left
// unchanged; flipping a milestone to true stamps its completion date
// unless the caller provides one.
type UpdateParams struct {
	KickoffCallCompleted *bool
	KickoffCallDate      *time.Time
	LandingPagesLive     *bool
	LandingPagesDate     *time.Time
	MetaAdsLive          *bool
	MetaAdsDate          *time.Time
	GoogleAdsLive        *bool
	GoogleAdsDate        *time.Time
	WebsiteLive          *bool
	WebsiteDate          *time.Time
}

func (s *Service) Create(ctx context.Context, clientID uuid.UUID) (*BoostClient, error) {
	b := &BoostClient{ClientID: clientID}
	b.ProgressPercentage = b.Progress()

	if err := s.repo.CreateBoostClient(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetByClient returns the boost record with its progress recomputed from
// the milestone flags rather than the stored cache.
func (s *Service) GetByClient(ctx context.Context, clientID uuid.UUID) (*BoostClient, error) {
	b, err := s.repo.GetBoostClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	b.ProgressPercentage = b.Progress()

	return b, nil
}

func (s *Service) List(ctx context.Context) ([]*BoostClient, error) {
	bs, err := s.repo.ListBoostClients(ctx)
	if err != nil {
		return nil, err
	}

	for _, b := range bs {
		b.ProgressPercentage = b.Progress()
	}

	return bs, nil
}

// UpdateByClient applies milestone changes and persists the recomputed
// progress percentage.
func (s *Service) UpdateByClient(ctx context.Context, clientID uuid.UUID, params UpdateParams) (*BoostClient, error) {
	b, err := s.repo.GetBoostClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	s.applyMilestone(&b.KickoffCallCompleted, &b.KickoffCallDate, params.KickoffCallCompleted, params.KickoffCallDate)
	s.applyMilestone(&b.LandingPagesLive, &b.LandingPagesDate, params.LandingPagesLive, params.LandingPagesDate)
	s.applyMilestone(&b.MetaAdsLive, &b.MetaAdsDate, params.MetaAdsLive, params.MetaAdsDate)
	s.applyMilestone(&b.GoogleAdsLive, &b.GoogleAdsDate, params.GoogleAdsLive, params.GoogleAdsDate)
	s.applyMilestone(&b.WebsiteLive, &b.WebsiteDate, params.WebsiteLive, params.WebsiteDate)

	b.ProgressPercentage = b.Progress()

	if err := s.repo.UpdateBoostClient(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) applyMilestone(flag *bool, date **time.Time, newFlag *bool, newDate *time.Time) {
	if newDate != nil {
		*date = newDate
	}

	if newFlag == nil {
		return
	}

	if *newFlag && !*flag && newDate == nil {
		completed := s.now()
		*date = &completed
	}

	if !*newFlag {
		*date = nil
	}

	*flag = *newFlag
}
