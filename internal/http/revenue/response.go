package revenue

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bowlnow/crm/internal/revenue"
)

type revenueResponse struct {
	ID                      uuid.UUID       `json:"id"`
	ClientID                uuid.UUID       `json:"clientId"`
	ClientName              string          `json:"clientName,omitempty"`
	PackageType             string          `json:"packageType"`
	StartDate               time.Time       `json:"startDate"`
	MonthlyRecurringRevenue decimal.Decimal `json:"monthlyRecurringRevenue"`
	OneTimeCharges          decimal.Decimal `json:"oneTimeCharges"`
	TotalPaid               decimal.Decimal `json:"totalPaid"`
	IsActive                bool            `json:"isActive"`
	CreatedAt               time.Time       `json:"createdAt"`
	UpdatedAt               *time.Time      `json:"updatedAt,omitempty"`
}

func toResponse(r *revenue.Record) revenueResponse {
	return revenueResponse{
		ID:                      r.ID,
		ClientID:                r.ClientID,
		ClientName:              r.ClientName,
		PackageType:             r.PackageType,
		StartDate:               r.StartDate,
		MonthlyRecurringRevenue: r.MonthlyRecurringRevenue,
		OneTimeCharges:          r.OneTimeCharges,
		TotalPaid:               r.TotalPaid,
		IsActive:                r.IsActive,
		CreatedAt:               r.CreatedAt,
		UpdatedAt:               r.UpdatedAt,
	}
}

func toResponseList(rs []*revenue.Record) []revenueResponse {
	resp := make([]revenueResponse, len(rs))
	for i, r := range rs {
		resp[i] = toResponse(r)
	}

	return resp
}

type metricsResponse struct {
	TotalMRR        float64 `json:"totalMRR"`
	UpsellPotential float64 `json:"upsellPotential"`
	TotalRevenue    float64 `json:"totalRevenue"`
	PayingClients   int     `json:"payingClients"`
}
