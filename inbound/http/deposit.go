package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"vending-machine/common"
	"vending-machine/common/constant"
	"vending-machine/common/errs"
	"vending-machine/common/otel"
	"vending-machine/model"
	"vending-machine/service"
)

type DepositHttp struct {
	Ledger service.LedgerService
}

func RegisterDepositHttp(mux *http.ServeMux, ledger service.LedgerService) *DepositHttp {
	in := &DepositHttp{Ledger: ledger}

	mux.HandleFunc("GET /api/deposit", RequireRole(model.RoleBuyer, in.balance))
	mux.HandleFunc("PUT /api/deposit", RequireRole(model.RoleBuyer, in.add))
	mux.HandleFunc("POST /api/deposit/reset", RequireRole(model.RoleBuyer, in.reset))

	return in
}

// balance answers with the current balance, or with whether it covers ?min=
// when that is given.
func (in DepositHttp) balance(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "DepositHttp.balance")
	defer span.End()

	identity, _ := identityFromCtx(ctx)

	if raw := r.URL.Query().Get("min"); raw != "" {
		minBalance, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || minBalance < 0 {
			writeErrorResponse(w, errs.ErrInvalidAmount)
			return
		}

		sufficient, err := in.Ledger.HasAtLeast(ctx, identity.ID, minBalance)
		if err != nil {
			slog.ErrorContext(ctx, "failed to check balance", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
			writeErrorResponse(w, err)
			return
		}

		writeJSONResponse(w, http.StatusOK, model.BalanceCheckResponse{Min: minBalance, Sufficient: sufficient})
		return
	}

	balance, err := in.Ledger.GetBalance(ctx, identity.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get balance", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, model.BalanceResponse{Balance: balance})
}

func (in DepositHttp) add(w http.ResponseWriter, r *http.Request) {
	var req model.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "DepositHttp.add")
	defer span.End()

	identity, _ := identityFromCtx(ctx)
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "deposit receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	result, err := in.Ledger.AddDeposit(ctx, identity.ID, req.Amount)
	if err != nil {
		slog.DebugContext(ctx, "deposit rejected", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeErrorResponse(w, err)
		return
	}

	slog.InfoContext(ctx, "deposit success", traceIdAttr, slog.Any(constant.LogFieldResponse, result))

	writeJSONResponse(w, http.StatusOK, result)
}

func (in DepositHttp) reset(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "DepositHttp.reset")
	defer span.End()

	identity, _ := identityFromCtx(ctx)
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	result, err := in.Ledger.ResetDeposit(ctx, identity.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to reset deposit", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeErrorResponse(w, err)
		return
	}

	slog.InfoContext(ctx, "reset deposit success", traceIdAttr, slog.Any(constant.LogFieldResponse, result))

	writeJSONResponse(w, http.StatusOK, result)
}
