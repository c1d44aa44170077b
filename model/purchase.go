package model

import "time"

// Change maps a coin denomination to the number of coins of that value.
type Change map[int32]int32

func (c Change) Total() int64 {
	var total int64
	for denomination, count := range c {
		total += int64(denomination) * int64(count)
	}
	return total
}

type PurchaseRequest struct {
	ProductID int32 `json:"product_id" validate:"required"`
	Quantity  int32 `json:"quantity"`
}

type PurchaseResult struct {
	Reference string  `json:"reference"`
	Product   Product `json:"product"`
	Spent     int64   `json:"spent"`
	Balance   int32   `json:"balance"`
	Change    Change  `json:"change"`
}

type Purchase struct {
	Reference      string    `json:"reference"`
	BuyerID        string    `json:"buyer_id"`
	ProductID      int32     `json:"product_id"`
	Quantity       int32     `json:"quantity"`
	TotalCost      int64     `json:"total_cost"`
	ChangeReturned int64     `json:"change_returned"`
	CreatedAt      time.Time `json:"created_at"`
}

type ListPurchasesResponse struct {
	Purchases []Purchase `json:"purchases"`
}

type PurchaseCompletedEventMessage struct {
	Reference   string `json:"reference"`
	BuyerID     string `json:"buyer_id"`
	ProductID   int32  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int32  `json:"quantity"`
	TotalCost   int64  `json:"total_cost"`
	Change      Change `json:"change"`
	CompletedAt string `json:"completed_at"`
}
