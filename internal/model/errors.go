package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrBusinessNotFound = errors.New("business not found")

// ExceedsGoalError rejects an investment larger than the remaining goal.
type ExceedsGoalError struct {
	Remaining decimal.Decimal
}

func (e *ExceedsGoalError) Error() string {
	return fmt.Sprintf("Investment amount exceeds the remaining funding goal of %s.", e.Remaining.StringFixedBank(0))
}
