package errs

import (
	"errors"
	"fmt"
)

type HttpError struct {
	Code    int
	Message string
	Data    any
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("code %d: %s, data: %v", e.Code, e.Message, e.Data)
}

// Domain error kinds. Messages are stable so callers can match on them.
var (
	ErrInvalidEntityData          = errors.New("invalid entity data, check format and value for required fields")
	ErrInvalidEntityId            = errors.New("invalid entity id, expected id=0 on create and id>0 on update/delete")
	ErrInvalidProductCostOrAmount = errors.New("invalid product cost or amount, amount should be >0 and cost should be >0 and divisible by 5")
	ErrUnauthorizedSeller         = errors.New("seller does not own this product")
	ErrAccountNotFound            = errors.New("account not found")
	ErrProductNotFound            = errors.New("product not found")
	ErrInsufficientStock          = errors.New("requested quantity exceeds amount available")
	ErrInsufficientDeposit        = errors.New("deposit is not enough to cover the order cost")
	ErrInvalidAmount              = errors.New("invalid amount, must be a positive multiple of 5")
	ErrInvalidQuantity            = errors.New("invalid quantity, must be greater than 0")

	ErrAccountAlreadyExists = errors.New("account with this id or username already exists")
	ErrEmailAlreadyExists   = errors.New("email already exists")
)
