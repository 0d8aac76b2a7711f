// Package boost tracks onboarding progress for clients on the
// full-service track through five launch milestones.
package boost

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bowlnow/crm/internal/progress"
)

var ErrNotFound = errors.New("boost client not found")

// BoostClient is the onboarding-progress record owned by exactly one
// client. The stored ProgressPercentage is a display cache: consumers
// that need a correct value call Progress(), which recomputes it from
// the milestone flags.
type BoostClient struct {
	ID                   uuid.UUID
	ClientID             uuid.UUID
	KickoffCallCompleted bool
	KickoffCallDate      *time.Time
	LandingPagesLive     bool
	LandingPagesDate     *time.Time
	MetaAdsLive          bool
	MetaAdsDate          *time.Time
	GoogleAdsLive        bool
	GoogleAdsDate        *time.Time
	WebsiteLive          bool
	WebsiteDate          *time.Time
	ProgressPercentage   int
	ClientName           string // Loaded via JOIN
	CreatedAt            time.Time
	UpdatedAt            *time.Time
}

// Milestones returns the five launch flags in their canonical order.
func (b *BoostClient) Milestones() []bool {
	return []bool{
		b.KickoffCallCompleted,
		b.LandingPagesLive,
		b.MetaAdsLive,
		b.GoogleAdsLive,
		b.WebsiteLive,
	}
}

// Progress recomputes the completion percentage from the milestone flags.
func (b *BoostClient) Progress() int {
	return progress.Percent(b.Milestones())
}
