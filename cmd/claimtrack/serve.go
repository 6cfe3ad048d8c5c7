package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/claimtrack/internal/auth"
	"github.com/mmynk/claimtrack/internal/httpapi"
	"github.com/mmynk/claimtrack/internal/metrics"
	"github.com/mmynk/claimtrack/internal/middleware"
	"github.com/mmynk/claimtrack/internal/rates"
	"github.com/mmynk/claimtrack/internal/service"
	"github.com/mmynk/claimtrack/internal/storage"
	"github.com/mmynk/claimtrack/pkg/claimsapi"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Connect and REST server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.ValidateServe(); err != nil {
			return err
		}

		schedule, err := rates.LoadFile(cfg.Rates.ScheduleFile)
		if err != nil {
			return err
		}

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()
		slog.Info("Storage initialized", "driver", cfg.Store.Driver)

		handler := newServerHandler(store, schedule)

		srv := &http.Server{
			Addr: fmt.Sprintf(":%d", cfg.Server.Port),
			// h2c serves HTTP/2 without TLS for Connect clients.
			Handler:           h2c.NewHandler(handler, &http2.Server{}),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			slog.Info("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Error("Server shutdown failed", "error", err)
			}
		}()

		slog.Info("Server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

// newServerHandler wires the Connect services, REST routes, metrics and
// health check behind CORS.
func newServerHandler(store storage.Store, schedule rates.Schedule) http.Handler {
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	m := metrics.New()

	claimSvc := service.NewClaimService(store, m)
	financeSvc := service.NewFinanceService(store, schedule)

	// Logging and metrics run outside auth so rejected calls are recorded.
	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		m.Interceptor(),
		middleware.RequireAuth(jwtManager),
		limiter.Interceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(claimsapi.NewClaimServiceHandler(claimSvc, interceptors))
	mux.Handle(claimsapi.NewFinanceServiceHandler(financeSvc, interceptors))
	mux.Handle("/api/", httpapi.New(claimSvc, financeSvc).Router(
		middleware.RequireAuthHTTP(jwtManager),
		limiter.Middleware,
	))
	mux.Handle("GET /metrics", m.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms", "Content-Disposition"},
		MaxAge:         300,
	})(mux)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
