package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blogem/battlenet-login/authenticator"
	"github.com/blogem/battlenet-login/battlenet"
	"github.com/blogem/battlenet-login/config"
	"github.com/blogem/battlenet-login/controllers"
	"github.com/blogem/battlenet-login/database"
	"github.com/blogem/battlenet-login/logger"
	"github.com/blogem/battlenet-login/metrics"
	authmiddleware "github.com/blogem/battlenet-login/middleware"
	"github.com/blogem/battlenet-login/registry"
	"github.com/blogem/battlenet-login/repositories"
	"github.com/blogem/battlenet-login/services"
)

const serviceName = "battlenet-login"

func main() {
	var envFile string

	root := &cobra.Command{
		Use:          "battlenet-login",
		Short:        "Battle.net social login service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before the environment")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the login HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	urlCmd := &cobra.Command{
		Use:   "url [scope...]",
		Short: "Print the Battle.net authorization URL for the configured client",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			logger.Init(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel, ServiceName: serviceName})

			drivers, err := buildDrivers(cfg, nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), drivers[battlenet.Name].BuildRedirectURL(args))
			return nil
		},
	}

	root.AddCommand(serveCmd, urlCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// serve wires the application and blocks until ctx is cancelled
func serve(ctx context.Context, cfg *config.Config) error {
	logger.Init(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel, ServiceName: serviceName})
	defer logger.Sync()
	log := logger.L()

	// Initialize database
	db, err := database.InitializeDatabase(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// Metrics registry with runtime collectors
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	drivers, err := buildDrivers(cfg, m)
	if err != nil {
		return err
	}

	// Initialize repositories, services and controllers
	repos := repositories.NewRepositories(db)
	srvs := services.NewServices(repos)
	ctrl := controllers.NewControllers(srvs, drivers, m)

	// Set up router
	r, err := setupRouter(ctrl, m, cfg.UseHTTPS)
	if err != nil {
		return fmt.Errorf("failed to setup router: %w", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", server.Addr), zap.String("db", cfg.DBPath))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildDrivers registers every known driver and builds the configured ones.
// Outbound requests are timed when m is set.
func buildDrivers(cfg *config.Config, m *metrics.Metrics) (map[string]authenticator.Driver, error) {
	opts := cfg.Battlenet.DriverOptions()
	if m != nil {
		opts = append(opts, battlenet.WithTransport(m.InstrumentTransport(http.DefaultTransport)))
	}

	reg := registry.New()
	if err := battlenet.Register(reg, opts...); err != nil {
		return nil, err
	}

	driver, err := reg.Make(battlenet.Name, cfg.Battlenet.DriverConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to build %s driver: %w", battlenet.Name, err)
	}

	return map[string]authenticator.Driver{battlenet.Name: driver}, nil
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, m *metrics.Metrics, useSecureCookies bool) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(authmiddleware.RequestLogger(logger.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second)) // 60 second timeout for OAuth callbacks

	// Session middleware
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     "battlenet_login_session",
		Secure:         useSecureCookies, // Set to true when USE_HTTPS=true (production)
		Gclifetime:     3600,             // Session lifetime in seconds
		Maxlifetime:    3600,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "%s"}`, serviceName)
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Group(func(r chi.Router) {
		r.Use(sessionHandler)

		// PUBLIC ROUTES (no authentication required)
		r.Get("/login/{provider}", ctrl.Auth.Login)
		r.Get("/callback/{provider}", ctrl.Auth.Callback)
		r.Post("/logout", ctrl.Auth.Logout)

		// PROTECTED ROUTES (authentication required)
		r.Group(func(r chi.Router) {
			r.Use(authmiddleware.RequireAuth("/login/" + battlenet.Name))

			r.Get("/me", ctrl.Account.Me)
			r.Get("/me/events", ctrl.Account.Events)
		})
	})

	return r, nil
}
