package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/pitchfund/internal/validation"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNewListFilter(t *testing.T) {
	tests := []struct {
		name     string
		category string
		search   string
		sortBy   string
		want     ListFilter
	}{
		{"defaults", "", "", "", ListFilter{SortBy: SortTrending}},
		{"sentinel is no filter", AllCategories, "", "", ListFilter{SortBy: SortTrending}},
		{"category kept", "Technology", " solar ", "funding", ListFilter{Category: "Technology", Search: "solar", SortBy: SortFunding}},
		{"goal", "", "", "goal", ListFilter{SortBy: SortGoal}},
		{"sort is case sensitive", "", "", "FUNDING", ListFilter{SortBy: SortTrending}},
		{"sort is not trimmed", "", "", " funding", ListFilter{SortBy: SortTrending}},
		{"unknown sort", "", "", "newest", ListFilter{SortBy: SortTrending}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewListFilter(tt.category, tt.search, tt.sortBy))
		})
	}
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("Food & Beverage"))
	assert.False(t, IsValidCategory(AllCategories))
	assert.False(t, IsValidCategory("technology"))
}

func TestExceedsGoalError_Message(t *testing.T) {
	err := &ExceedsGoalError{Remaining: decimal.RequireFromString("100.00")}
	assert.Equal(t, "Investment amount exceeds the remaining funding goal of 100.", err.Error())

	err = &ExceedsGoalError{Remaining: decimal.RequireFromString("50.50")}
	assert.Equal(t, "Investment amount exceeds the remaining funding goal of 50.", err.Error())
}

func TestMoney_JSON(t *testing.T) {
	b, err := json.Marshal(Money(decimal.RequireFromString("950")))
	require.NoError(t, err)
	assert.Equal(t, `"950.00"`, string(b))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"12.5"`), &m))
	assert.True(t, m.Decimal().Equal(decimal.RequireFromString("12.5")))
}

func TestCheckDecimal(t *testing.T) {
	tests := map[string]string{
		"1":            "",
		"1000.00":      "",
		"99999999.99":  "",
		"0.001":        "Ensure that there are no more than 2 decimal places.",
		"12.345":       "Ensure that there are no more than 2 decimal places.",
		"123456789.99": "Ensure that there are no more than 10 digits in total.",
		"10000000000":  "Ensure that there are no more than 10 digits in total.",
		"-1.50":        "",
		"-1.005":       "Ensure that there are no more than 2 decimal places.",
		"-12345678901": "Ensure that there are no more than 10 digits in total.",
	}
	for in, want := range tests {
		assert.Equal(t, want, checkDecimal(decimal.RequireFromString(in)), in)
	}
}

func fieldErrors(t *testing.T, err error) map[string]bool {
	t.Helper()
	require.Error(t, err)

	out := map[string]bool{}
	var custom validation.CustomValidationErrors
	if errors.As(err, &custom) {
		for _, c := range custom {
			out[c.Field] = true
		}
		return out
	}
	out["tags"] = true
	return out
}

func validPitch() *CreatePitchRequest {
	return &CreatePitchRequest{
		Title:            "Solar Farm",
		Description:      "Community solar",
		Category:         "Technology",
		Location:         "Nairobi",
		FundingGoal:      dec("1000"),
		MinInvestment:    dec("10"),
		EntrepreneurName: "Ada",
		Images:           []ImageInput{{Image: "a.png"}, {Image: "b.png"}, {Image: "c.png"}},
		Videos:           []VideoInput{{Title: "Intro", VideoFile: "intro.mp4", Duration: "3:45"}},
		Documents:        []DocumentInput{{Name: "Plan", DocumentFile: "plan.pdf", Size: "2.4 MB"}},
	}
}

func TestCreatePitchRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *CreatePitchRequest)
		wantField string
	}{
		{name: "valid", mutate: func(r *CreatePitchRequest) {}},
		{name: "missing title", mutate: func(r *CreatePitchRequest) { r.Title = "" }, wantField: "tags"},
		{name: "missing goal", mutate: func(r *CreatePitchRequest) { r.FundingGoal = nil }, wantField: "tags"},
		{name: "zero goal", mutate: func(r *CreatePitchRequest) { r.FundingGoal = dec("0") }, wantField: "tags"},
		{name: "min below one", mutate: func(r *CreatePitchRequest) { r.MinInvestment = dec("0.5") }, wantField: "tags"},
		{name: "image without file", mutate: func(r *CreatePitchRequest) { r.Images[1].Image = "" }, wantField: "tags"},
		{name: "bad website", mutate: func(r *CreatePitchRequest) { r.Website = "not a url" }, wantField: "tags"},
		{name: "unknown category", mutate: func(r *CreatePitchRequest) { r.Category = AllCategories }, wantField: "category"},
		{name: "too many places", mutate: func(r *CreatePitchRequest) { r.FundingGoal = dec("1000.123") }, wantField: "funding_goal"},
		{name: "min above goal", mutate: func(r *CreatePitchRequest) { r.MinInvestment = dec("2000") }, wantField: "min_investment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validPitch()
			tt.mutate(req)
			err := req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, fieldErrors(t, err)[tt.wantField], "expected failure on %s, got %v", tt.wantField, err)
		})
	}
}

func TestCreatePitchRequest_ToPitchOrdersImagesByPosition(t *testing.T) {
	req := validPitch()
	seven := 7
	req.Images[0].Order = &seven

	pitch := req.ToPitch()

	require.Len(t, pitch.Images, 3)
	for i, want := range []string{"a.png", "b.png", "c.png"} {
		assert.Equal(t, want, pitch.Images[i].Image)
		assert.Equal(t, i, pitch.Images[i].Order)
	}
	assert.True(t, pitch.Business.CurrentFunding.IsZero())
	assert.Equal(t, "3:45", pitch.Videos[0].Duration)
	assert.Equal(t, "2.4 MB", pitch.Documents[0].Size)
}

func TestInvestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     InvestRequest
		wantErr bool
	}{
		{"valid", InvestRequest{BusinessID: 1, InvestmentAmount: dec("50")}, false},
		{"exactly one", InvestRequest{BusinessID: 1, InvestmentAmount: dec("1")}, false},
		{"zero", InvestRequest{BusinessID: 1, InvestmentAmount: dec("0")}, true},
		{"negative", InvestRequest{BusinessID: 1, InvestmentAmount: dec("-5")}, true},
		{"below one", InvestRequest{BusinessID: 1, InvestmentAmount: dec("0.99")}, true},
		{"missing amount", InvestRequest{BusinessID: 1}, true},
		{"missing business", InvestRequest{InvestmentAmount: dec("5")}, true},
		{"three places", InvestRequest{BusinessID: 1, InvestmentAmount: dec("5.001")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type stubURLs struct{}

func (stubURLs) File(path string) *string {
	if path == "" {
		return nil
	}
	u := "http://x/media/" + path
	return &u
}

func (stubURLs) Thumbnail(path string) string {
	if path == "" {
		return "http://x/static/img/video_placeholder.png"
	}
	return "http://x/media/" + path
}

func (stubURLs) Cover(path *string) string {
	if path == nil || *path == "" {
		return "/placeholder.svg"
	}
	return "http://x/media/" + *path
}

func TestNewBusinessDetailResponse(t *testing.T) {
	d := BusinessDetail{
		Business:  Business{ID: 3, FundingGoal: decimal.NewFromInt(1000), CurrentFunding: decimal.NewFromInt(900)},
		Images:    []BusinessImage{{Image: "a.png", Order: 0}},
		Videos:    []BusinessVideo{{Title: "Intro"}},
		Documents: []BusinessDocument{{Name: "Plan"}},
	}

	res := NewBusinessDetailResponse(d, stubURLs{})

	require.Len(t, res.Images, 1)
	assert.Equal(t, "http://x/media/a.png", *res.Images[0].ImageURL)
	assert.Equal(t, "http://x/static/img/video_placeholder.png", res.Videos[0].ThumbnailURL)
	assert.Nil(t, res.Videos[0].VideoFileURL)
	assert.Nil(t, res.Documents[0].FileURL)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"current_funding":"900.00"`)
	assert.Contains(t, string(b), `"file_url":null`)
}

func TestNewBusinessSummaryResponse_Placeholder(t *testing.T) {
	res := NewBusinessSummaryResponse(BusinessSummary{ID: 1}, stubURLs{})
	assert.Equal(t, "/placeholder.svg", res.Image)
}
