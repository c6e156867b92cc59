package email

import (
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	got *resend.SendEmailRequest
	err error
}

func (f *fakeSender) SendWithContext(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "email_1"}, nil
}

func newTestClient(s sender) *Client {
	logger := zerolog.Nop()
	return &Client{emails: s, from: "Pitchfund <noreply@pitchfund.test>", logger: &logger}
}

func TestRenderTemplate_Preview(t *testing.T) {
	for name, data := range PreviewData {
		html, err := RenderTemplate(name, data)
		require.NoError(t, err, name)
		assert.Contains(t, html, data["Title"])
	}
}

func TestRenderTemplate_EscapesHTML(t *testing.T) {
	html, err := RenderTemplate(TemplateGoalReached, map[string]string{"Title": "<script>x</script>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestSendGoalReachedEmail(t *testing.T) {
	fake := &fakeSender{}
	client := newTestClient(fake)

	err := client.SendGoalReachedEmail(context.Background(), []string{"ops@pitchfund.test"}, GoalReached{
		BusinessID:  7,
		Title:       "Solar Farm",
		FundingGoal: "1000.00",
		Backers:     12,
	})
	require.NoError(t, err)

	require.NotNil(t, fake.got)
	assert.Equal(t, []string{"ops@pitchfund.test"}, fake.got.To)
	assert.Equal(t, "Solar Farm reached its funding goal", fake.got.Subject)
	assert.Contains(t, fake.got.Html, "1000.00")
	assert.Equal(t, "Pitchfund <noreply@pitchfund.test>", fake.got.From)
}

func TestSendGoalReachedEmail_Errors(t *testing.T) {
	client := newTestClient(&fakeSender{err: errors.New("rate limited")})

	err := client.SendGoalReachedEmail(context.Background(), nil, GoalReached{Title: "x"})
	assert.ErrorIs(t, err, errNoRecipients)

	err = client.SendGoalReachedEmail(context.Background(), []string{"a@b.test"}, GoalReached{Title: "x"})
	assert.ErrorContains(t, err, "rate limited")
}
