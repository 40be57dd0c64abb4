package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/arca-digital/complaints-book-backend/pkg/cache"
	"github.com/arca-digital/complaints-book-backend/pkg/clients/dns_client"
	"github.com/arca-digital/complaints-book-backend/pkg/clients/plesk_client"
	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/dao"
	"github.com/arca-digital/complaints-book-backend/pkg/db"
	"github.com/arca-digital/complaints-book-backend/pkg/domains"
	"github.com/arca-digital/complaints-book-backend/pkg/handler"
	m "github.com/arca-digital/complaints-book-backend/pkg/instrumentation"
	"github.com/arca-digital/complaints-book-backend/pkg/instrumentation/custom"
	"github.com/arca-digital/complaints-book-backend/pkg/notifications"
	"github.com/arca-digital/complaints-book-backend/pkg/router"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks/queue"
	"github.com/arca-digital/complaints-book-backend/pkg/tasks/worker"
	"github.com/arca-digital/complaints-book-backend/pkg/tenancy"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const apiAddress = ":8000"

func main() {
	var wg sync.WaitGroup

	config.Load()
	closer := config.ConfigureLogging()
	defer closer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	err := db.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	pool, err := queue.NewPgxPool(ctx, db.GetUrl())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect job store")
	}
	poolWrapper := queue.NewPgxPoolWrapper(pool)
	defer poolWrapper.Close()

	cfg := config.Get()
	metrics := m.NewMetrics(prometheus.NewRegistry())
	daoReg := dao.GetDaoRegistry(db.DB)
	jobStore := queue.NewPgJobStore(poolWrapper)
	hostCache := cache.Initialize()
	notifier := notifications.NewNotifier(cfg.NotificationsClient, metrics)
	panel := plesk_client.NewPleskClient(cfg.Plesk)
	verifier := domains.NewVerifier(cfg.Platform, dns_client.NewDnsClient(cfg.Domains), metrics)
	provisioner := tasks.NewProvisioner(cfg.Plesk, jobStore, daoReg.SystemKV, panel, notifier, metrics)

	e := router.ConfigureEchoWithMetrics(handler.Services{
		DaoRegistry: daoReg,
		Registrar:   domains.NewRegistrar(cfg, verifier, daoReg.TenantDomain, jobStore, hostCache, notifier),
		Resolver:    tenancy.NewResolver(cfg.Platform, daoReg.Tenant, hostCache, metrics),
		Jobs:        jobStore,
		Runner:      provisioner,
		Panel:       panel,
		Config:      cfg,
	}, metrics)

	metricsRouter := echo.New()
	metricsRouter.HideBanner = true
	metricsRouter.Add(http.MethodGet, cfg.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(
		metrics.Registry(),
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			Registry:          metrics.Registry(),
		},
	)))
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:           metricsRouter,
		IdleTimeout:       1 * time.Minute,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	scheduler := worker.NewScheduler(provisioner, cfg.Plesk.Interval)
	scheduler.Start(ctx)

	if collector := custom.NewCollector(ctx, metrics, daoReg.ProvisioningJob); collector != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			collector.Run()
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info().Msgf("Starting metrics server on %s", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Metrics server stopped")
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := e.Start(apiAddress); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Error starting api server")
		}
	}()

	<-quit
	log.Info().Msg("Shutting down")
	cancel()
	scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error shutting down api server")
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error shutting down metrics server")
	}
	wg.Wait()
}
