package constant

import "time"

const (
	PurchaseBuyerLock = "purchase:buyer_lock:%s"
)

const (
	PurchaseBuyerLockDefaultTTL = 30 * time.Second
)
