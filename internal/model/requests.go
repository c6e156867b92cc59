package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

type ListBusinessesRequest struct {
	Category string `query:"category"`
	Search   string `query:"search"`
	SortBy   string `query:"sort_by"`
}

// Validate accepts any query; unmatched values just narrow the listing to nothing.
func (r *ListBusinessesRequest) Validate() error {
	return nil
}

func (r *ListBusinessesRequest) Filter() ListFilter {
	return NewListFilter(r.Category, r.Search, r.SortBy)
}

type GetBusinessRequest struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (r *GetBusinessRequest) Validate() error {
	return validate.Struct(r)
}

type DeleteBusinessRequest struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (r *DeleteBusinessRequest) Validate() error {
	return validate.Struct(r)
}

type ImageInput struct {
	Image string `json:"image" validate:"required,max=500"`
	// Order is accepted for compatibility and ignored; position decides.
	Order *int `json:"order,omitempty"`
}

type VideoInput struct {
	Title     string `json:"title" validate:"required,max=200"`
	VideoFile string `json:"video_file" validate:"max=500"`
	Thumbnail string `json:"thumbnail" validate:"max=500"`
	Duration  string `json:"duration" validate:"max=20"`
}

type DocumentInput struct {
	Name         string `json:"name" validate:"required,max=200"`
	DocumentFile string `json:"document_file" validate:"max=500"`
	Size         string `json:"size" validate:"max=20"`
}

// CreatePitchRequest is a new business with its media.
type CreatePitchRequest struct {
	Title                string           `json:"title" validate:"required,max=200"`
	Tagline              string           `json:"tagline" validate:"max=255"`
	Description          string           `json:"description" validate:"required"`
	Category             string           `json:"category" validate:"required,max=100"`
	Location             string           `json:"location" validate:"required,max=255"`
	FundingGoal          *decimal.Decimal `json:"funding_goal" validate:"required,gt=0"`
	MinInvestment        *decimal.Decimal `json:"min_investment" validate:"required,gte=1"`
	TeamSize             int              `json:"team_size" validate:"gte=0"`
	Website              string           `json:"website" validate:"omitempty,max=200,url"`
	SocialMedia          string           `json:"social_media" validate:"max=255"`
	EntrepreneurName     string           `json:"entrepreneur_name" validate:"required,max=255"`
	BusinessPlan         string           `json:"business_plan"`
	FinancialProjections string           `json:"financial_projections"`
	MarketAnalysis       string           `json:"market_analysis"`
	CompetitiveAdvantage string           `json:"competitive_advantage"`
	UseOfFunds           string           `json:"use_of_funds"`
	Images               []ImageInput     `json:"images" validate:"max=50,dive"`
	Videos               []VideoInput     `json:"videos" validate:"max=20,dive"`
	Documents            []DocumentInput  `json:"documents" validate:"max=50,dive"`
}

func (r *CreatePitchRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}

	var checks fieldChecks
	if !IsValidCategory(r.Category) {
		checks.add("category", "must be one of: "+strings.Join(Categories, ", "))
	}
	checks.decimal("funding_goal", r.FundingGoal)
	checks.decimal("min_investment", r.MinInvestment)
	if r.MinInvestment.GreaterThan(*r.FundingGoal) {
		checks.add("min_investment", "must not exceed funding_goal")
	}
	return checks.err()
}

// ToPitch converts a validated request. Images are ordered by position.
func (r *CreatePitchRequest) ToPitch() NewPitch {
	p := NewPitch{
		Business: Business{
			Title:                strings.TrimSpace(r.Title),
			Tagline:              r.Tagline,
			Description:          r.Description,
			Category:             r.Category,
			Location:             r.Location,
			FundingGoal:          *r.FundingGoal,
			CurrentFunding:       decimal.Zero,
			MinInvestment:        *r.MinInvestment,
			TeamSize:             r.TeamSize,
			Website:              r.Website,
			SocialMedia:          r.SocialMedia,
			EntrepreneurName:     r.EntrepreneurName,
			BusinessPlan:         r.BusinessPlan,
			FinancialProjections: r.FinancialProjections,
			MarketAnalysis:       r.MarketAnalysis,
			CompetitiveAdvantage: r.CompetitiveAdvantage,
			UseOfFunds:           r.UseOfFunds,
		},
	}

	for i, img := range r.Images {
		p.Images = append(p.Images, BusinessImage{Image: img.Image, Order: i})
	}
	for _, v := range r.Videos {
		p.Videos = append(p.Videos, BusinessVideo{
			Title:     v.Title,
			VideoFile: v.VideoFile,
			Thumbnail: v.Thumbnail,
			Duration:  v.Duration,
		})
	}
	for _, d := range r.Documents {
		p.Documents = append(p.Documents, BusinessDocument{
			Name:         d.Name,
			DocumentFile: d.DocumentFile,
			Size:         d.Size,
		})
	}

	return p
}

// InvestRequest applies InvestmentAmount to the business.
type InvestRequest struct {
	BusinessID       int64            `json:"business_id" validate:"required"`
	InvestmentAmount *decimal.Decimal `json:"investment_amount" validate:"required,gte=1"`
}

func (r *InvestRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}

	var checks fieldChecks
	checks.decimal("investment_amount", r.InvestmentAmount)
	return checks.err()
}

func (r *InvestRequest) Amount() decimal.Decimal {
	if r.InvestmentAmount == nil {
		return decimal.Zero
	}
	return *r.InvestmentAmount
}
