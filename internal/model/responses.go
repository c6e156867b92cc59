package model

import "time"

// MediaURLs turns stored media paths into public URLs for one request.
type MediaURLs interface {
	// File returns the absolute URL, or nil for an empty path.
	File(path string) *string
	// Thumbnail falls back to the video placeholder.
	Thumbnail(path string) string
	// Cover falls back to the list placeholder.
	Cover(path *string) string
}

type BusinessSummaryResponse struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	Location       string `json:"location"`
	FundingGoal    Money  `json:"funding_goal"`
	CurrentFunding Money  `json:"current_funding"`
	Backers        int    `json:"backers"`
	MinInvestment  Money  `json:"min_investment"`
	Image          string `json:"image"`
}

func NewBusinessSummaryResponse(s BusinessSummary, urls MediaURLs) BusinessSummaryResponse {
	return BusinessSummaryResponse{
		ID:             s.ID,
		Title:          s.Title,
		Description:    s.Description,
		Category:       s.Category,
		Location:       s.Location,
		FundingGoal:    Money(s.FundingGoal),
		CurrentFunding: Money(s.CurrentFunding),
		Backers:        s.Backers,
		MinInvestment:  Money(s.MinInvestment),
		Image:          urls.Cover(s.CoverImage),
	}
}

func NewBusinessSummaryResponses(items []BusinessSummary, urls MediaURLs) []BusinessSummaryResponse {
	out := make([]BusinessSummaryResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewBusinessSummaryResponse(item, urls))
	}
	return out
}

type ImageResponse struct {
	ImageURL *string `json:"image_url"`
	Order    int     `json:"order"`
}

type VideoResponse struct {
	Title        string  `json:"title"`
	ThumbnailURL string  `json:"thumbnail_url"`
	VideoFileURL *string `json:"video_file_url"`
	Duration     string  `json:"duration"`
}

type DocumentResponse struct {
	Name    string  `json:"name"`
	FileURL *string `json:"file_url"`
	Size    string  `json:"size"`
}

type BusinessDetailResponse struct {
	ID                   int64              `json:"id"`
	Title                string             `json:"title"`
	Tagline              string             `json:"tagline"`
	Description          string             `json:"description"`
	Category             string             `json:"category"`
	Location             string             `json:"location"`
	FundingGoal          Money              `json:"funding_goal"`
	CurrentFunding       Money              `json:"current_funding"`
	MinInvestment        Money              `json:"min_investment"`
	Backers              int                `json:"backers"`
	TeamSize             int                `json:"team_size"`
	Website              string             `json:"website"`
	SocialMedia          string             `json:"social_media"`
	EntrepreneurName     string             `json:"entrepreneur_name"`
	BusinessPlan         string             `json:"business_plan"`
	FinancialProjections string             `json:"financial_projections"`
	MarketAnalysis       string             `json:"market_analysis"`
	CompetitiveAdvantage string             `json:"competitive_advantage"`
	UseOfFunds           string             `json:"use_of_funds"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
	Images               []ImageResponse    `json:"images"`
	Videos               []VideoResponse    `json:"videos"`
	Documents            []DocumentResponse `json:"documents"`
}

func NewBusinessDetailResponse(d BusinessDetail, urls MediaURLs) BusinessDetailResponse {
	res := BusinessDetailResponse{
		ID:                   d.ID,
		Title:                d.Title,
		Tagline:              d.Tagline,
		Description:          d.Description,
		Category:             d.Category,
		Location:             d.Location,
		FundingGoal:          Money(d.FundingGoal),
		CurrentFunding:       Money(d.CurrentFunding),
		MinInvestment:        Money(d.MinInvestment),
		Backers:              d.Backers,
		TeamSize:             d.TeamSize,
		Website:              d.Website,
		SocialMedia:          d.SocialMedia,
		EntrepreneurName:     d.EntrepreneurName,
		BusinessPlan:         d.BusinessPlan,
		FinancialProjections: d.FinancialProjections,
		MarketAnalysis:       d.MarketAnalysis,
		CompetitiveAdvantage: d.CompetitiveAdvantage,
		UseOfFunds:           d.UseOfFunds,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
		Images:               make([]ImageResponse, 0, len(d.Images)),
		Videos:               make([]VideoResponse, 0, len(d.Videos)),
		Documents:            make([]DocumentResponse, 0, len(d.Documents)),
	}

	for _, img := range d.Images {
		res.Images = append(res.Images, ImageResponse{
			ImageURL: urls.File(img.Image),
			Order:    img.Order,
		})
	}
	for _, v := range d.Videos {
		res.Videos = append(res.Videos, VideoResponse{
			Title:        v.Title,
			ThumbnailURL: urls.Thumbnail(v.Thumbnail),
			VideoFileURL: urls.File(v.VideoFile),
			Duration:     v.Duration,
		})
	}
	for _, doc := range d.Documents {
		res.Documents = append(res.Documents, DocumentResponse{
			Name:    doc.Name,
			FileURL: urls.File(doc.DocumentFile),
			Size:    doc.Size,
		})
	}

	return res
}

type InvestmentResponse struct {
	ID             int64 `json:"id"`
	CurrentFunding Money `json:"current_funding"`
	Backers        int   `json:"backers"`
	FundingGoal    Money `json:"funding_goal"`
}

func NewInvestmentResponse(r InvestmentResult) InvestmentResponse {
	return InvestmentResponse{
		ID:             r.ID,
		CurrentFunding: Money(r.CurrentFunding),
		Backers:        r.Backers,
		FundingGoal:    Money(r.FundingGoal),
	}
}
