package model

type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Deposit  int32  `json:"deposit"`
}

type CreateAccountRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=Seller Buyer"`
}

type DepositRequest struct {
	Amount int32 `json:"amount"`
}

// DepositResult is returned by ledger mutations. Balance is the new balance
// after AddDeposit and the prior balance after ResetDeposit.
type DepositResult struct {
	Balance   int32 `json:"balance"`
	Confirmed bool  `json:"confirmed"`
}

type BalanceResponse struct {
	Balance int32 `json:"balance"`
}

type BalanceCheckResponse struct {
	Min        int64 `json:"min"`
	Sufficient bool  `json:"sufficient"`
}
