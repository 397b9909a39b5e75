package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"autonomous_newsroom/config"
	"autonomous_newsroom/logging"
	"autonomous_newsroom/newsroom"
	"autonomous_newsroom/server"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config.yaml")
	topic := flag.String("topic", "", "run one cycle for this topic and exit")
	iterations := flag.Int("iterations", 0, "max write/review iterations (overrides config)")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	flag.Parse()

	// API keys commonly live in a local .env file.
	_ = godotenv.Load()

	cfg := config.Load(*configPath)
	logger := logging.New(cfg.Logging.Level, cfg.Logging.File)

	prompts, err := newsroom.LoadPrompts(cfg.PromptsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	backend, err := newsroom.NewOpenAIBackend(newsroom.Settings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	client := newsroom.NewClient(backend, logger)
	agents := newsroom.NewAgents(client, prompts)
	orchestrator := newsroom.NewOrchestrator(agents, logger)

	maxIterations := cfg.MaxIterations
	if *iterations > 0 {
		maxIterations = *iterations
	}

	if *serve {
		srv, err := server.New(orchestrator, maxIterations, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		logger.Info("starting web server", "addr", listen)
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if *topic == "" {
		fmt.Fprintln(os.Stderr, "--topic is required (or use --serve)")
		os.Exit(1)
	}

	result := orchestrator.Run(context.Background(), *topic, maxIterations)
	out, err := json.MarshalIndent(result.Report(), "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(string(out))
	if result.Status == newsroom.CycleError {
		os.Exit(1)
	}
}
