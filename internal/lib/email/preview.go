package email

// PreviewData is sample template data for rendering templates locally.
var PreviewData = map[Template]map[string]string{
	TemplateGoalReached: {
		"BusinessID":       "42",
		"Title":            "Sunrise Solar Co-op",
		"EntrepreneurName": "Amina Otieno",
		"FundingGoal":      "25000.00",
		"Backers":          "118",
	},
}
