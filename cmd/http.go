package cmd

import (
	"context"
	"fmt"
	"github.com/go-playground/validator/v10"
	"log"
	"log/slog"
	"net/http"
	"time"
	"vending-machine/common/constant"
	inboundHttp "vending-machine/inbound/http"
	"vending-machine/service"
)

func runHttpServerCmd(ctx context.Context) {
	cfg := newCfg("env")

	stopProfiling := startProfiling(cfg, "http")
	defer stopProfiling()

	validate := validator.New()

	store, release := newStore(cfg)
	defer release()

	cacheClient := newRedis(cfg)
	defer cacheClient.Close()

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)
	createStreamWorkQueue(ctx, cfg, js)

	purchaseService := service.NewPurchaseService(store)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		slog.DebugContext(r.Context(), "health check")
		w.WriteHeader(http.StatusOK)
	})

	inboundHttp.RegisterProductHttp(mux, purchaseService.Catalog)
	inboundHttp.RegisterDepositHttp(mux, purchaseService.Ledger)
	inboundHttp.RegisterAccountHttp(mux, store, validate)
	purchaseHttp := inboundHttp.RegisterPurchaseHttp(mux, purchaseService, cacheClient, js, validate)
	purchaseHttp.LockTTL = max(constant.PurchaseBuyerLockDefaultTTL, cfg.GetDuration("server.request_timeout")+5*time.Second)

	timeoutMiddleware := inboundHttp.TimeoutMiddleware(cfg.GetDuration("server.request_timeout"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.GetInt("server.port")),
		Handler:           timeoutMiddleware(inboundHttp.CorsMiddleware(inboundHttp.IdentityMiddleware(mux))),
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalln("unable to start server", err)
		}
	}()

	slog.Info("http server started", slog.String("addr", srv.Addr))

	<-ctx.Done()

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutDown); err != nil {
		log.Fatalln("unable to shutdown server", err)
	}

	slog.Info("http server stopped")
}
