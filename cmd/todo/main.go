package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"

	"tododapp/internal/adapters/browser"
	"tododapp/internal/adapters/editor"
	"tododapp/internal/adapters/tui"
	"tododapp/internal/bootstrap"
	"tododapp/internal/config"
)

func main() {
	configFlag := flag.String("config", "", "path to the config file (default "+config.DefaultPath()+")")
	networkFlag := flag.String("network", "", "network to use (localhost or sepolia)")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *networkFlag != "" {
		cfg.Network = *networkFlag
	}

	// The screen belongs to bubbletea; everything logged goes to the file
	logFile, err := tea.LogToFile(cfg.Log.File, "todo")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Initialize adapters
	rt, err := bootstrap.New(ctx, cfg, log.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()
	log.Printf("starting: %s", rt)

	rt.Watch(ctx)

	// Create and run TUI app
	app := tui.NewApp(ctx, tui.Options{
		Sync:            rt.Controller,
		Sessions:        rt.Sessions,
		Composer:        editor.NewComposer(),
		Opener:          browser.NewOpener(),
		Gateway:         rt.Store.GatewayURL,
		Network:         rt.Network.Name,
		WalletAvailable: rt.WalletAvailable,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
