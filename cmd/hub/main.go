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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"qshield/internal/app"
	"qshield/internal/hub"
	"qshield/internal/logging"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "hub:", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("hub", pflag.ExitOnError)
	flags.String("home", "", "data dir (default ~/.qshield)")
	flags.StringP("passphrase", "p", "", "passphrase sealing persisted state")
	flags.String("backend", "", "persistence backend: file, sqlite or memory")
	_ = flags.Parse(os.Args[1:])

	cfg, err := app.Load(flags)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := hub.NewMetrics(reg)
	if err != nil {
		return err
	}
	cfg.Simulator = metrics.WrapSimulator

	w, err := app.NewWire(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Close(); err != nil {
			log.Error("close state backend", zap.Error(err))
		}
	}()

	srv := hub.New(w, metrics, reg, hub.Options{
		AllowedOrigins: cfg.Hub.AllowedOrigins,
		Log:            log.Named("http"),
	})
	defer srv.Close()

	httpSrv := &http.Server{
		Addr:              cfg.Hub.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("hub listening", zap.String("addr", cfg.Hub.Addr), zap.String("backend", cfg.Backend))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
