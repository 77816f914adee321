package main

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"elasticreplan/config"
	"elasticreplan/demand"
	"elasticreplan/friction"
	"elasticreplan/httpapi"
	"elasticreplan/model"
	"elasticreplan/oracle"
	"elasticreplan/replan"
	"elasticreplan/solver"
	"elasticreplan/store"
)

func main() {
	cfg := config.Load()

	log := buildLogger(cfg.LogLevel)
	defer log.Sync()

	sessionStore := buildStore(cfg, log)

	router := buildOracleRouter(cfg, sessionStore, log)

	pipeline := &replan.Pipeline{
		Router:  router,
		Solvers: []solver.Solver{solver.BranchAndBound{}, solver.Greedy{}},
		Scorer: &friction.ModelScorer{
			Path: cfg.FrictionModelPath,
			Log:  log,
			Priors: func(leg *model.Leg) friction.Prior {
				return friction.Prior{CrowdDensity: demand.CrowdDensity(time.Now().Hour())}
			},
		},
		Log:   log,
		Store: sessionStore,
	}
	dispatcher := replan.Dispatcher{
		Real:          pipeline,
		Bypass:        replan.DemoBypass{},
		DemoSessionID: cfg.DemoSessionID,
	}

	server := httpapi.NewServer(dispatcher, sessionStore, log)

	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      server,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infow("replan service listening", "addr", cfg.ListenAddr, "demoMode", cfg.DemoMode)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server exited unexpectedly", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warnw("graceful shutdown failed", "error", err)
	}
}

func buildLogger(level string) *zap.SugaredLogger {
	var zcfg zap.Config
	if level == "debug" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	l, err := zcfg.Build()
	if err != nil {
		l = zap.NewNop()
	}
	return l.Sugar()
}

func buildStore(cfg config.Config, log *zap.SugaredLogger) store.Store {
	if cfg.SessionStoreURL == "" {
		return store.NopStore{}
	}
	addr := cfg.SessionStoreURL
	if u, err := url.Parse(cfg.SessionStoreURL); err == nil && u.Host != "" {
		addr = u.Host
	}
	s := store.NewRedis(addr, log)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Ping(ctx); err != nil {
		log.Warnw("session store unreachable at startup, continuing with degraded cache", "addr", addr, "error", err)
	}
	return s
}

func buildOracleRouter(cfg config.Config, sessionStore store.Store, log *zap.SugaredLogger) oracle.Oracle {
	def := oracle.NewHTTP(cfg.PrimaryDirectionsBaseURL, model.Walking, cfg.APICallTimeout)
	cached := oracle.NewCaching(def, sessionStore, log)
	demoAware := oracle.NewDemoAware(cached, cfg.DemoMode)
	return oracle.NewRouter(demoAware, nil)
}
