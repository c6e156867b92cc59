package email

import (
	"context"
	"fmt"
	"strconv"
)

// GoalReached describes a business whose funding goal was completed.
type GoalReached struct {
	BusinessID       int64
	Title            string
	EntrepreneurName string
	FundingGoal      string
	Backers          int
}

func (c *Client) SendGoalReachedEmail(ctx context.Context, to []string, g GoalReached) error {
	if len(to) == 0 {
		return errNoRecipients
	}

	data := map[string]string{
		"BusinessID":       strconv.FormatInt(g.BusinessID, 10),
		"Title":            g.Title,
		"EntrepreneurName": g.EntrepreneurName,
		"FundingGoal":      g.FundingGoal,
		"Backers":          strconv.Itoa(g.Backers),
	}

	return c.SendEmail(
		ctx,
		to,
		fmt.Sprintf("%s reached its funding goal", g.Title),
		TemplateGoalReached,
		data,
	)
}
