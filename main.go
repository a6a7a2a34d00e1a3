package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Govind-619/quickcart-payments/config"
	"github.com/Govind-619/quickcart-payments/controllers"
	"github.com/Govind-619/quickcart-payments/routes"
	"github.com/Govind-619/quickcart-payments/services"
	"github.com/Govind-619/quickcart-payments/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	if err := utils.InitLogger(cfg.LogDir); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	sessions, err := config.NewSessionStore(cfg)
	if err != nil {
		utils.LogError("Failed to initialize session store: %v", err)
		log.Fatal("Failed to initialize session store:", err)
	}
	defer sessions.Close()

	opts := []services.BrokerOption{services.WithProviderTimeout(cfg.ProviderTimeout)}
	if cfg.Email.Enabled() {
		opts = append(opts, services.WithPaidNotifier(utils.NewPaidNotifier(cfg.Email)))
		utils.LogInfo("Paid notifications enabled for %s", cfg.Email.NotifyTo)
	}

	gws := config.NewGateways(cfg)
	for _, g := range gws {
		if !g.Configured() {
			utils.LogInfo("%s gateway is not configured; requests for it will fail", g.Name())
		}
	}

	broker := services.NewPaymentBroker(sessions, cfg.DefaultCurrency, gws, opts...)
	pc := controllers.NewPaymentController(broker, utils.ServiceName)

	router := routes.SetupRouter(pc, routes.RouterConfig{
		AllowedOrigin: cfg.AllowedOrigin,
		JWTSecret:     cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Payment backend running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError("Error starting server: %v", err)
			log.Fatal("Error starting server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.LogInfo("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.LogError("Server forced to shutdown: %v", err)
	}
}
