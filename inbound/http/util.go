package http

import (
	"encoding/json"
	"errors"
	"github.com/go-playground/validator/v10"
	"net/http"
	"strconv"
	"vending-machine/common/errs"
	"vending-machine/model"
)

var domainErrorStatus = []struct {
	err  error
	code int
}{
	{errs.ErrInvalidEntityData, http.StatusBadRequest},
	{errs.ErrInvalidEntityId, http.StatusBadRequest},
	{errs.ErrInvalidProductCostOrAmount, http.StatusBadRequest},
	{errs.ErrInvalidAmount, http.StatusBadRequest},
	{errs.ErrInvalidQuantity, http.StatusBadRequest},
	{errs.ErrInsufficientStock, http.StatusBadRequest},
	{errs.ErrInsufficientDeposit, http.StatusBadRequest},
	{errs.ErrUnauthorizedSeller, http.StatusForbidden},
	{errs.ErrProductNotFound, http.StatusNotFound},
	{errs.ErrAccountNotFound, http.StatusNotFound},
	{errs.ErrAccountAlreadyExists, http.StatusConflict},
	{errs.ErrEmailAlreadyExists, http.StatusConflict},
}

func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func writeErrorResponse(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	var message string
	var data any
	var httpErr *errs.HttpError
	var validationErr validator.ValidationErrors
	if errors.As(err, &httpErr) {
		message = httpErr.Message
		data = httpErr.Data
		w.WriteHeader(httpErr.Code)
	} else if errors.As(err, &validationErr) {
		message = "Validation failed"
		w.WriteHeader(http.StatusBadRequest)

		validationErrors := make(map[string]string)
		for _, fieldErr := range validationErr {
			validationErrors[fieldErr.Field()] = fieldErr.Tag()
		}

		data = validationErrors
	} else if code, ok := statusOf(err); ok {
		message = err.Error()
		w.WriteHeader(code)
	} else {
		message = "Internal Server Error"
		w.WriteHeader(http.StatusInternalServerError)
	}

	errorResponse := model.ErrorResponse{Error: message, Data: data}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func statusOf(err error) (int, bool) {
	for _, d := range domainErrorStatus {
		if errors.Is(err, d.err) {
			return d.code, true
		}
	}

	return 0, false
}

// pathProductID reads the {id} wildcard. Anything that is not a positive
// int32 is reported as an invalid entity id.
func pathProductID(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, errs.ErrInvalidEntityId
	}

	return int32(id), nil
}
