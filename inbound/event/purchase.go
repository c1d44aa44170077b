package event

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/nats-io/nats.go/jetstream"
	"golang.org/x/text/message"
	"log/slog"
	"slices"
	"strings"
	"time"
	"vending-machine/common"
	"vending-machine/common/constant"
	"vending-machine/common/contract"
	"vending-machine/common/otel"
	"vending-machine/model"
)

type PurchaseEvent struct {
	Store             contract.Store
	Publisher         jetstream.Publisher
	CurrencyFormatter *message.Printer

	Timeout time.Duration
	TimeNow func() time.Time
}

// RecordHandler stores the purchase history row and queues the receipt email.
// A redelivered event finds its row already stored and publishes the receipt
// again; the message id lets the stream drop the duplicate.
func (in PurchaseEvent) RecordHandler(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	var req model.PurchaseCompletedEventMessage
	err := json.Unmarshal(msg, &req)
	if err != nil {
		slog.WarnContext(ctx, "purchase completed event unmarshal error", slog.Any(constant.LogFieldErr, err))
		return nil
	}

	ctx, span := otel.Tracer.Start(ctx, "PurchaseEvent.RecordHandler")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "purchase completed event receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	completedAt, err := time.Parse(time.RFC3339, req.CompletedAt)
	if err != nil {
		completedAt = in.now()
	}

	inserted, err := in.Store.InsertPurchase(ctx, model.Purchase{
		Reference:      req.Reference,
		BuyerID:        req.BuyerID,
		ProductID:      req.ProductID,
		Quantity:       req.Quantity,
		TotalCost:      req.TotalCost,
		ChangeReturned: req.Change.Total(),
		CreatedAt:      completedAt,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to insert purchase", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return err
	}

	if !inserted {
		slog.DebugContext(ctx, "purchase already recorded", traceIdAttr, slog.String("reference", req.Reference))
	}

	account, err := in.Store.FindAccountByID(ctx, req.BuyerID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to find buyer account", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		return err
	}

	if account == nil || account.Email == "" {
		slog.DebugContext(ctx, "buyer has no email, skip receipt", traceIdAttr, slog.String("buyer_id", req.BuyerID))
		return nil
	}

	err = common.PublishMessage(ctx, in.Publisher, constant.SubjectSendEmail, model.SendEmailEventMessage{
		To:      account.Email,
		Subject: "Purchase Receipt",
		Body:    in.buildPurchaseReceiptEmailBody(account.Username, req),
	}, jetstream.WithMsgID("receipt:"+req.Reference))
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish purchase receipt message", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return err
	}

	slog.InfoContext(ctx, "purchase recorded", traceIdAttr, slog.String("reference", req.Reference))

	return nil
}

func (in PurchaseEvent) buildPurchaseReceiptEmailBody(name string, req model.PurchaseCompletedEventMessage) string {
	denominations := make([]int32, 0, len(req.Change))
	for denomination := range req.Change {
		denominations = append(denominations, denomination)
	}
	slices.Sort(denominations)
	slices.Reverse(denominations)

	var lines strings.Builder
	if len(denominations) == 0 {
		lines.WriteString("- none\n")
	}
	for _, denomination := range denominations {
		lines.WriteString(fmt.Sprintf("- %d x %s\n", req.Change[denomination], in.CurrencyFormatter.Sprintf("%d cents", denomination)))
	}

	return fmt.Sprintf(constant.EmailPurchaseReceiptTemplate,
		name,
		req.Reference,
		req.ProductName,
		req.Quantity,
		in.CurrencyFormatter.Sprintf("%d cents", req.TotalCost),
		lines.String(),
		in.CurrencyFormatter.Sprintf("%d cents", req.Change.Total()),
	)
}

func (in PurchaseEvent) now() time.Time {
	if in.TimeNow == nil {
		return time.Now()
	}
	return in.TimeNow()
}
