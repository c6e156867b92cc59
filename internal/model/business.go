// Package model holds the pitch domain types and their request and response shapes.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Business is a funding campaign.
type Business struct {
	ID                   int64
	Title                string
	Tagline              string
	Description          string
	Category             string
	Location             string
	FundingGoal          decimal.Decimal
	CurrentFunding       decimal.Decimal
	MinInvestment        decimal.Decimal
	Backers              int
	TeamSize             int
	Website              string
	SocialMedia          string
	EntrepreneurName     string
	BusinessPlan         string
	FinancialProjections string
	MarketAnalysis       string
	CompetitiveAdvantage string
	UseOfFunds           string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Remaining is how much can still be invested.
func (b Business) Remaining() decimal.Decimal {
	return b.FundingGoal.Sub(b.CurrentFunding)
}

type BusinessImage struct {
	ID         int64
	BusinessID int64
	Image      string
	Order      int
}

type BusinessVideo struct {
	ID         int64
	BusinessID int64
	Title      string
	VideoFile  string
	Thumbnail  string
	Duration   string
}

type BusinessDocument struct {
	ID           int64
	BusinessID   int64
	Name         string
	DocumentFile string
	Size         string
}

// BusinessSummary is a listing row. CoverImage is the first image by order, if any.
type BusinessSummary struct {
	ID             int64
	Title          string
	Description    string
	Category       string
	Location       string
	FundingGoal    decimal.Decimal
	CurrentFunding decimal.Decimal
	Backers        int
	MinInvestment  decimal.Decimal
	CoverImage     *string
}

// BusinessDetail is a business with all of its media.
type BusinessDetail struct {
	Business
	Images    []BusinessImage
	Videos    []BusinessVideo
	Documents []BusinessDocument
}

// NewPitch is a validated pitch ready to be stored.
type NewPitch struct {
	Business  Business
	Images    []BusinessImage
	Videos    []BusinessVideo
	Documents []BusinessDocument
}

// InvestmentResult is the state of a business after an investment.
type InvestmentResult struct {
	ID             int64
	CurrentFunding decimal.Decimal
	Backers        int
	FundingGoal    decimal.Decimal
}

// GoalReached reports whether the investment completed the goal.
func (r InvestmentResult) GoalReached() bool {
	return r.CurrentFunding.GreaterThanOrEqual(r.FundingGoal)
}
