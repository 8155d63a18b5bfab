// Copyright 2025 Vincent Spruyt
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	infogen "github.com/vspruyt/infogen"
	"github.com/vspruyt/infogen/ai"
	"github.com/vspruyt/infogen/core"
	"github.com/vspruyt/infogen/workflow"
)

func main() {
	app := &cli.App{
		Name:   "infogen",
		Usage:  "Cache-first web research engine",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "research",
				Usage:     "Run one research query through the cache and workflow",
				Action:    researchCommand,
				ArgsUsage: "<query>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB cache directory",
						Value:   "./infogen-cache",
					},
					&cli.StringFlag{
						Name:    "tavily-api-key",
						Usage:   "Tavily API key",
						EnvVars: []string{"TAVILY_API_KEY"},
					},
					&cli.StringFlag{
						Name:  "ai-host",
						Usage: "OpenAI-compatible API host for embeddings and chat",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:    "ai-api-key",
						Usage:   "API key for the AI host",
						EnvVars: []string{"OPENAI_API_KEY"},
						Value:   "none",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "chat-model",
						Usage: "Chat model name",
						Value: "qwen2.5:3b",
					},
					&cli.StringFlag{
						Name:  "depth",
						Usage: "Search depth (basic, advanced)",
						Value: "basic",
					},
					&cli.IntFlag{
						Name:  "min-results",
						Usage: "Validated sources required before the run stops retrying",
						Value: workflow.DefaultMinResults,
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Sources requested per search attempt",
						Value: workflow.DefaultMaxResults,
					},
					&cli.BoolFlag{
						Name:  "verbose-events",
						Usage: "Print progress events as they happen",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func researchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a research query is required")
	}

	var depth core.SearchDepth
	switch c.String("depth") {
	case "basic":
		depth = core.DepthBasic
	case "advanced":
		depth = core.DepthAdvanced
	default:
		return fmt.Errorf("invalid depth %q: must be basic or advanced", c.String("depth"))
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithAPIKey(c.String("ai-api-key")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
	)

	engine, err := infogen.NewEngine(c.String("db"),
		infogen.WithAIConfig(aiConfig),
		infogen.WithTavilyAPIKey(c.String("tavily-api-key")),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}
	defer engine.Close()

	events := workflow.NewEventStream(256)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range events.Events() {
			if c.Bool("verbose-events") || event.Type == workflow.EventResult {
				fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", event.Type, event.Phase, event.Message)
			}
		}
	}()

	orchestrator := engine.NewOrchestrator(&workflow.Config{
		MinResults:               c.Int("min-results"),
		MaxResults:               c.Int("max-results"),
		Depth:                    depth,
		MaxConcurrentValidations: workflow.DefaultMaxConcurrentValidations,
	}, workflow.WithEvents(events))

	run, err := orchestrator.Run(ctx, query)
	events.Close()
	<-done
	if err != nil {
		if run != nil && len(run.Results) > 0 {
			fmt.Fprintf(os.Stderr, "run failed after gathering %d sources: %s\n", len(run.Results), run.ErrorMessage)
			printResults(run)
		}
		return err
	}

	printResults(run)
	return nil
}

func printResults(run *workflow.RunResult) {
	fmt.Printf("Query:    %s\n", run.OriginalQuery)
	fmt.Printf("Enhanced: %s\n", run.EnhancedQuery)
	fmt.Printf("Status:   %s (retries: %d)\n", run.Status, run.RetryCount)
	if len(run.BadDomains) > 0 {
		fmt.Println("Excluded domains:")
		for domain, reason := range run.BadDomains {
			fmt.Printf("  - %s (%s)\n", domain, reason)
		}
	}
	fmt.Printf("Sources (%d):\n", len(run.Results))
	for i, result := range run.Results {
		fmt.Printf("\n%d. %s\n   %s\n", i+1, result.Title, result.URL)
		if result.Summary != "" {
			fmt.Printf("   %s\n", result.Summary)
		}
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
