// README: Entry point; loads config, wires stores and services, serves HTTP and reloads the graph on SIGHUP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"campusride/internal/config"
	httptransport "campusride/internal/http"
	"campusride/internal/infra"
	"campusride/internal/logger"
	"campusride/internal/maps"
	"campusride/internal/modules/matching"
	"campusride/internal/modules/request"
	"campusride/internal/modules/routing"
	"campusride/internal/types"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.Log, "campusride-api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	desc, err := routing.LoadDescriptionFile(cfg.Routing.GraphFile)
	if err != nil {
		log.WithError(err).Fatal("read routing graph")
	}
	routingSvc, err := routing.NewService(desc, cfg.Routing.DestinationID, log.WithField("module", "routing"))
	if err != nil {
		log.WithError(err).Fatal("build routing graph")
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.WithError(err).Fatal("connect postgres")
	}
	defer dbPool.Close()

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		log.WithError(err).Fatal("connect redis")
	}
	defer redisClient.Close()

	poolStore := matching.NewStore(redisClient)

	matchCfg := matching.DefaultConfig().WithOverrides(cfg.Matching.CorridorWidthM, cfg.Matching.MaxCapacity)
	destination := func() types.Point { return routingSvc.Destination().Point() }
	matchingSvc, err := matching.NewService(matchCfg, poolStore, routingSvc, destination, log.WithField("module", "matching"))
	if err != nil {
		log.WithError(err).Fatal("configure matching")
	}
	if cfg.Maps.APIKey != "" {
		directions, err := maps.NewRouteService(cfg.Maps.APIKey, cfg.Maps.Region)
		if err != nil {
			log.WithError(err).Fatal("configure google directions")
		}
		matchingSvc.AddRouteSource("directions", directions)
	}

	requestSvc := request.NewService(request.NewStore(dbPool), poolStore, log.WithField("module", "request"))
	if _, err := requestSvc.Resync(ctx); err != nil {
		log.WithError(err).Warn("waiting pool resync failed")
	}
	if size, err := poolStore.Size(ctx); err != nil {
		log.WithError(err).Warn("read waiting pool size")
	} else {
		log.WithField("pool_size", size).Info("waiting pool ready")
	}

	go reloadOnHangup(ctx, cfg.Routing.GraphFile, routingSvc, log)

	server := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: httptransport.NewRouter(httptransport.RouterDeps{
			Routing:     routingSvc,
			Matching:    matchingSvc,
			Request:     requestSvc,
			CORSOrigins: cfg.HTTP.CORSOrigins,
			Log:         log,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", cfg.HTTP.Addr).Info("http server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("http server")
	}
}

// reloadOnHangup rebuilds the routing graph from disk on every SIGHUP.
func reloadOnHangup(ctx context.Context, path string, svc *routing.Service, log logrus.FieldLogger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			desc, err := routing.LoadDescriptionFile(path)
			if err != nil {
				log.WithError(err).Warn("routing graph reload skipped")
				continue
			}
			_ = svc.Reload(desc)
		}
	}
}
