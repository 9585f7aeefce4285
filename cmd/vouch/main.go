package main

import (
	"fmt"
	"log"
	"os"

	"github.com/aussiebroadwan/vouch/internal/vouch/app"
)

const usage = `usage:
  vouch [serve]
  vouch employer add --org NAME --email EMAIL [--password-stdin]
  vouch intent resolve --id INTENT --state failed|minted [--token ADDRESS]
`

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"serve"}
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	switch args[0] {
	case "serve":
		serve(cfg)
	case "employer":
		if len(args) < 2 || args[1] != "add" {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		if err := employerAdd(cfg, args[2:], os.Stdin, os.Stdout); err != nil {
			log.Fatalf("employer add: %v", err)
		}
	case "intent":
		if len(args) < 2 || args[1] != "resolve" {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		if err := intentResolve(cfg, args[2:], os.Stdout); err != nil {
			log.Fatalf("intent resolve: %v", err)
		}
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func serve(cfg app.Config) {
	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
