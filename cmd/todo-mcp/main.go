package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "tododapp/internal/adapters/mcp"
	"tododapp/internal/bootstrap"
	"tododapp/internal/config"
)

func main() {
	configFlag := flag.String("config", "", "path to the config file")
	networkFlag := flag.String("network", "", "network to use (localhost or sepolia)")
	flag.Parse()

	// stdout carries the protocol
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("todo-mcp: %v", err)
	}
	if *networkFlag != "" {
		cfg.Network = *networkFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rt, err := bootstrap.New(ctx, cfg, log.Default())
	if err != nil {
		log.Fatalf("todo-mcp: %v", err)
	}
	defer rt.Close()

	if res, err := rt.Connect(ctx); err != nil {
		log.Printf("todo-mcp: %v", err)
	} else {
		log.Printf("todo-mcp: %s", res.Message)
	}
	rt.Watch(ctx)

	mcpServer := server.NewMCPServer(
		"todo-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, rt.Controller, rt.Sessions)
	mcpadapter.RegisterWriteTools(mcpServer, rt.Controller, rt.Sessions)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("todo-mcp: %v", err)
	}
}
