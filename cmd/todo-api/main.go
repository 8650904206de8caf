package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tododapp/internal/adapters/httpapi"
	"tododapp/internal/bootstrap"
	"tododapp/internal/config"
)

func main() {
	configFlag := flag.String("config", "", "path to the config file")
	networkFlag := flag.String("network", "", "network to use (localhost or sepolia)")
	addrFlag := flag.String("addr", "", "listen address (overrides api.addr)")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("todo-api: %v", err)
	}
	if *networkFlag != "" {
		cfg.Network = *networkFlag
	}
	if *addrFlag != "" {
		cfg.API.Addr = *addrFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.New(ctx, cfg, log.Default())
	if err != nil {
		log.Fatalf("todo-api: %v", err)
	}
	defer rt.Close()
	log.Printf("todo-api: %s", rt)

	if res, err := rt.Connect(ctx); err != nil {
		log.Printf("todo-api: %v", err)
	} else {
		log.Printf("todo-api: %s", res.Message)
	}
	rt.Watch(ctx)

	router := httpapi.NewRouter(httpapi.NewHandler(rt.Controller, rt.Sessions, log.Default()))
	srv := &http.Server{
		Addr:              cfg.API.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("todo-api: shutdown: %v", err)
		}
	}()

	log.Printf("todo-api: listening on http://%s", cfg.API.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("todo-api: %v", err)
	}
}
