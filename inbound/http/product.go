package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"vending-machine/common"
	"vending-machine/common/constant"
	"vending-machine/common/errs"
	"vending-machine/common/otel"
	"vending-machine/model"
	"vending-machine/service"
)

type ProductHttp struct {
	Catalog service.CatalogService
}

func RegisterProductHttp(mux *http.ServeMux, catalog service.CatalogService) *ProductHttp {
	in := &ProductHttp{Catalog: catalog}

	mux.HandleFunc("GET /api/products", in.list)
	mux.HandleFunc("GET /api/products/{id}", in.get)
	mux.HandleFunc("GET /api/sellers/{sellerId}/products", RequireRole(model.RoleSeller, in.listBySeller))
	mux.HandleFunc("POST /api/products", RequireRole(model.RoleSeller, in.create))
	mux.HandleFunc("PUT /api/products/{id}", RequireRole(model.RoleSeller, in.update))
	mux.HandleFunc("DELETE /api/products/{id}", RequireRole(model.RoleSeller, in.delete))

	return in
}

func (in ProductHttp) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "ProductHttp.list")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	products, err := in.Catalog.GetAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list products", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, model.ListProductsResponse{Products: products})
}

func (in ProductHttp) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathProductID(r)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "ProductHttp.get")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	product, err := in.Catalog.GetByID(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to find product", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if product == nil {
		writeErrorResponse(w, errs.ErrProductNotFound)
		return
	}

	writeJSONResponse(w, http.StatusOK, product)
}

func (in ProductHttp) listBySeller(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromCtx(r.Context())
	if r.PathValue("sellerId") != identity.ID {
		writeErrorResponse(w, errs.ErrUnauthorizedSeller)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "ProductHttp.listBySeller")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	products, err := in.Catalog.GetBySeller(ctx, identity.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list seller products", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, model.ListProductsResponse{Products: products})
}

func (in ProductHttp) create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "ProductHttp.create")
	defer span.End()

	identity, _ := identityFromCtx(ctx)
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "create product receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	product, err := in.Catalog.Create(ctx, model.Product{
		ID:              req.ID,
		Name:            req.Name,
		Cost:            req.Cost,
		AmountAvailable: req.AmountAvailable,
		SellerID:        identity.ID,
	})
	if err != nil {
		slog.DebugContext(ctx, "create product rejected", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeErrorResponse(w, err)
		return
	}

	slog.InfoContext(ctx, "create product success", traceIdAttr, slog.Any(constant.LogFieldResponse, product.ID))

	writeJSONResponse(w, http.StatusCreated, product)
}

func (in ProductHttp) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathProductID(r)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	var req model.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "ProductHttp.update")
	defer span.End()

	identity, _ := identityFromCtx(ctx)
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "update product receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	product, err := in.Catalog.Update(ctx, id, model.ProductPatch{
		Name:            req.Name,
		Cost:            req.Cost,
		AmountAvailable: req.AmountAvailable,
	}, identity.ID)
	if err != nil {
		slog.DebugContext(ctx, "update product rejected", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeErrorResponse(w, err)
		return
	}

	if product == nil {
		writeErrorResponse(w, errs.ErrProductNotFound)
		return
	}

	writeJSONResponse(w, http.StatusOK, product)
}

func (in ProductHttp) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathProductID(r)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "ProductHttp.delete")
	defer span.End()

	identity, _ := identityFromCtx(ctx)
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	product, err := in.Catalog.Delete(ctx, id, identity.ID)
	if err != nil {
		slog.DebugContext(ctx, "delete product rejected", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		common.UtilSpanError(span, err)
		writeErrorResponse(w, err)
		return
	}

	if product == nil {
		writeErrorResponse(w, errs.ErrProductNotFound)
		return
	}

	slog.InfoContext(ctx, "delete product success", traceIdAttr, slog.Any(constant.LogFieldResponse, product.ID))

	writeJSONResponse(w, http.StatusOK, product)
}
