package http

import (
	"encoding/json"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"log/slog"
	"net/http"
	"vending-machine/common"
	"vending-machine/common/constant"
	"vending-machine/common/contract"
	"vending-machine/common/errs"
	"vending-machine/common/otel"
	"vending-machine/model"
)

type AccountHttp struct {
	Store    contract.Store
	Validate *validator.Validate

	NewID func() string
}

func RegisterAccountHttp(mux *http.ServeMux, store contract.Store, validate *validator.Validate) *AccountHttp {
	in := &AccountHttp{
		Store:    store,
		Validate: validate,
		NewID:    uuid.NewString,
	}

	mux.HandleFunc("POST /api/accounts", in.create)

	return in
}

func (in AccountHttp) create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "AccountHttp.create")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "create account receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	role, _ := model.ParseRole(req.Role)
	account, err := in.Store.InsertAccount(ctx, model.Account{
		ID:       in.NewID(),
		Username: req.Username,
		Email:    req.Email,
		Role:     role,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to insert account", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeErrorResponse(w, err)
		return
	}

	slog.InfoContext(ctx, "create account success", traceIdAttr, slog.Any(constant.LogFieldResponse, account.ID))

	writeJSONResponse(w, http.StatusCreated, account)
}
