package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/config"
	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/server"
	"github.com/thenarrator2/Zepto-Blinkit-Sales/internal/util"
)

var (
	port    = flag.Int("port", 0, "server port (config.toml wins when it sets port explicitly)")
	devMode = flag.Bool("dev", false, "development mode")
	dataDir = flag.String("dataDir", "", "data directory (overrides config file)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Salesboard - weekly sales summaries")
	fmt.Println("==========================================")

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// Command line flags override the config file.
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	resolvedDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Printf("Failed to create data directory: %v", err)
	} else {
		fmt.Printf("Data directory: %s\n", resolvedDir)
	}

	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("Starting server on port %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("Opening browser: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("Could not open browser automatically, visit: %s\n", url)
		}
	} else {
		fmt.Printf("Development mode: visit %s\n", url)
	}

	fmt.Println("\nPress Ctrl+C to stop...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	srv.GetStore().Close()
}
