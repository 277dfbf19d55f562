package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	formsubmit "github.com/goliatone/go-formsubmit"
	"github.com/goliatone/go-formsubmit/pkg/server"
)

func main() {
	configFile := flag.String("config", "", "YAML configuration file")
	addr := flag.String("addr", "", "listen address (overrides server.addr)")
	staticDir := flag.String("static", "", "directory served under /static")
	wasm := flag.String("wasm", "", "browser client file name inside the static directory")
	flag.Parse()

	logger := log.New(os.Stderr, "formsubmit-server: ", log.LstdFlags)

	cfg, err := formsubmit.LoadConfig(*configFile)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *staticDir != "" {
		cfg.Server.StaticDir = *staticDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	form, err := formsubmit.ResolveForm(ctx, cfg)
	if err != nil {
		logger.Fatalf("resolve form: %v", err)
	}

	srv, err := server.New(
		server.WithFields(form.Fields),
		server.WithEndpoint(form.Endpoint),
		server.WithStaticDir(cfg.Server.StaticDir),
		server.WithWASM(*wasm),
		server.WithLogger(logger),
		server.WithRequestLog(os.Stdout),
	)
	if err != nil {
		logger.Fatalf("server: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatalf("listen: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Fatalf("shutdown: %v", err)
		}
	}
}
