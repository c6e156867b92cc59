package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskGoalReached = "business:goal_reached"
	TaskMediaPurge  = "media:purge"
)

type GoalReachedPayload struct {
	BusinessID  int64  `json:"business_id"`
	FundingGoal string `json:"funding_goal"`
	Backers     int    `json:"backers"`
}

// NewGoalReachedTask is unique per business for a day so a goal is announced once.
func NewGoalReachedTask(p GoalReachedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskGoalReached,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
		asynq.Unique(24*time.Hour),
	), nil
}

type MediaPurgePayload struct {
	BusinessID int64    `json:"business_id"`
	Paths      []string `json:"paths"`
}

func NewMediaPurgeTask(p MediaPurgePayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskMediaPurge,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(2*time.Minute),
	), nil
}
