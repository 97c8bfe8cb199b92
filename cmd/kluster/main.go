// kluster sends one chat completion request to the kluster.ai API and prints the reply.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/tnglemongrass/aider/go-kluster/internal/chat"
	"github.com/tnglemongrass/aider/go-kluster/internal/config"
	"github.com/tnglemongrass/aider/go-kluster/internal/credential"
	"github.com/tnglemongrass/aider/go-kluster/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, credential.Terminal{}))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, prompter credential.Prompter) int {
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	log, err := logger.New(cfg.Verbose)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	apiKey, err := credential.Acquire(cfg.APIKey, prompter)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	session, err := chat.NewSession(cfg, apiKey, stdout, log)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating session: %v\n", err)
		return 1
	}

	if cfg.ListModels {
		err = session.ListModels(ctx)
	} else {
		err = session.Ask(ctx)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
