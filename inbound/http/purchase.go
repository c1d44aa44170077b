package http

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"log/slog"
	"net/http"
	"time"
	"vending-machine/common"
	"vending-machine/common/constant"
	"vending-machine/common/contract"
	"vending-machine/common/errs"
	"vending-machine/common/otel"
	"vending-machine/model"
	"vending-machine/service"
)

// releaseBuyerLockScript deletes the buyer lock only while it still holds the
// token of the request that took it.
var releaseBuyerLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type PurchaseHttp struct {
	Purchase  service.PurchaseService
	Store     contract.Store
	Cache     *redis.Client
	Publisher jetstream.Publisher
	Validate  *validator.Validate

	// LockTTL should outlive the request timeout.
	LockTTL      time.Duration
	NewLockToken func() string
	TimeNow      func() time.Time
}

func RegisterPurchaseHttp(
	mux *http.ServeMux,
	purchase service.PurchaseService,
	cache *redis.Client,
	publisher jetstream.Publisher,
	validate *validator.Validate,
) *PurchaseHttp {
	in := &PurchaseHttp{
		Purchase:  purchase,
		Store:     purchase.Store,
		Cache:     cache,
		Publisher: publisher,
		Validate:  validate,

		LockTTL:      constant.PurchaseBuyerLockDefaultTTL,
		NewLockToken: func() string { return ulid.Make().String() },
		TimeNow:      time.Now,
	}

	mux.HandleFunc("POST /api/buy", RequireRole(model.RoleBuyer, in.buy))
	mux.HandleFunc("GET /api/purchases", RequireRole(model.RoleBuyer, in.history))

	return in
}

func (in PurchaseHttp) buy(w http.ResponseWriter, r *http.Request) {
	var req model.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "PurchaseHttp.buy")
	defer span.End()

	identity, _ := identityFromCtx(ctx)
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "buy receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	lockKey := fmt.Sprintf(constant.PurchaseBuyerLock, identity.ID)
	lockToken := in.NewLockToken()
	buyerLock, err := in.Cache.SetNX(ctx, lockKey, lockToken, in.LockTTL).Result()
	if err != nil {
		slog.ErrorContext(ctx, "failed to set buyer lock", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if !buyerLock {
		slog.DebugContext(ctx, "buyer already has a purchase in progress", traceIdAttr)
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusConflict, Message: "Purchase already in progress"})
		return
	}

	defer in.releaseBuyerLock(ctx, lockKey, lockToken)

	result, err := in.Purchase.Purchase(ctx, identity.ID, req.ProductID, req.Quantity)
	if err != nil {
		common.UtilSpanError(span, err)
		writeErrorResponse(w, err)
		return
	}

	// The purchase is already committed, a lost event only costs the history
	// row and the receipt.
	err = common.PublishMessage(ctx, in.Publisher, constant.SubjectPurchaseCompleted, model.PurchaseCompletedEventMessage{
		Reference:   result.Reference,
		BuyerID:     identity.ID,
		ProductID:   result.Product.ID,
		ProductName: result.Product.Name,
		Quantity:    req.Quantity,
		TotalCost:   result.Spent,
		Change:      result.Change,
		CompletedAt: in.TimeNow().Format(time.RFC3339),
	}, jetstream.WithMsgID(result.Reference))
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish purchase completed message", traceIdAttr, slog.String("reference", result.Reference), slog.Any(constant.LogFieldErr, err))
	}

	slog.InfoContext(ctx, "buy success", traceIdAttr, slog.Any(constant.LogFieldResponse, result.Reference))

	writeJSONResponse(w, http.StatusOK, result)
}

// releaseBuyerLock runs even after the request context is done, so a timed
// out request does not leave the buyer locked until the TTL expires.
func (in PurchaseHttp) releaseBuyerLock(ctx context.Context, key, token string) {
	ctx = context.WithoutCancel(ctx)

	if err := releaseBuyerLockScript.Run(ctx, in.Cache, []string{key}, token).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to release buyer lock", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
	}
}

func (in PurchaseHttp) history(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "PurchaseHttp.history")
	defer span.End()

	identity, _ := identityFromCtx(ctx)

	purchases, err := in.Store.FindPurchasesByBuyer(ctx, identity.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list purchases", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if purchases == nil {
		purchases = []model.Purchase{}
	}

	writeJSONResponse(w, http.StatusOK, model.ListPurchasesResponse{Purchases: purchases})
}
