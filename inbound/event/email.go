package event

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
	"vending-machine/common"
	"vending-machine/common/constant"
	"vending-machine/common/contract"
	"vending-machine/common/otel"
	"vending-machine/model"
)

type EmailEvent struct {
	EmailOutbound contract.EmailSender
	Timeout       time.Duration
}

func (in EmailEvent) SendEmailHandler(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	var req model.SendEmailEventMessage
	err := json.Unmarshal(msg, &req)
	if err != nil {
		slog.WarnContext(ctx, "send email event unmarshal error", slog.Any(constant.LogFieldErr, err))
		return nil
	}

	ctx, span := otel.Tracer.Start(ctx, "EmailEvent.SendEmailHandler")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	if req.To == "" {
		slog.WarnContext(ctx, "send email event without recipient", traceIdAttr, slog.String("subject", req.Subject))
		return nil
	}

	err = in.EmailOutbound.Send(ctx, []string{req.To}, req.Subject, req.Body)
	if err != nil {
		slog.ErrorContext(ctx, "send email event error", slog.Any(constant.LogFieldErr, err), slog.String("subject", req.Subject), traceIdAttr)
		common.UtilSpanError(span, err)
		return err
	}

	slog.DebugContext(ctx, "send email event success", slog.String("subject", req.Subject), traceIdAttr)

	return nil
}
