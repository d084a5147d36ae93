package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"emergencyrelay/backend/internal/auth"
	"emergencyrelay/backend/internal/config"
	"emergencyrelay/backend/internal/models"
	"emergencyrelay/backend/internal/storage"

	"github.com/mama165/sdk-go/logs"
)

const usage = `Usage: admin <command> [args]

Commands:
  reports [status]                          list reports, optionally filtered by status
  stations                                  list responder stations
  save-station <id> <name> <type> [address] create or replace a station
  delete-station <id>                       remove a station
  token <user_id> <role> [email]            sign an identity token for testing`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	args := os.Args[2:]

	// token does not touch the store
	if os.Args[1] == "token" {
		if len(args) < 2 {
			fmt.Println("Usage: admin token <user_id> <role> [email]")
			os.Exit(1)
		}
		if cfg.JWTSecret == "" {
			log.Fatal("AUTH_JWT_SECRET is not set")
		}
		id := models.Identity{UserID: args[0], Role: args[1]}
		if len(args) > 2 {
			id.Email = args[2]
		}
		token, err := auth.Issue(cfg.JWTSecret, id, config.DevTokenTTL)
		if err != nil {
			log.Fatalf("Error signing token: %v", err)
		}
		fmt.Println(token)
		return
	}

	if cfg.Offline() {
		log.Fatalf("no store configured for driver %q", cfg.StoreDriver)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := storage.Open(ctx, cfg, logs.GetLoggerFromString(cfg.LogLevel))
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	switch os.Args[1] {
	case "reports":
		var status models.ReportStatus
		if len(args) > 0 {
			status = models.ReportStatus(args[0])
		}
		err = listReports(ctx, store, status, os.Stdout)
	case "stations":
		err = listStations(ctx, store, os.Stdout)
	case "save-station":
		if len(args) < 3 {
			fmt.Println("Usage: admin save-station <id> <name> <type> [address]")
			os.Exit(1)
		}
		station := models.Station{ID: args[0], Name: args[1], Type: args[2], UpdatedAt: time.Now()}
		if len(args) > 3 {
			station.Address = strings.Join(args[3:], " ")
		}
		if err = store.SaveStation(ctx, station); err == nil {
			fmt.Printf("Station %s has been saved.\n", station.ID)
		}
	case "delete-station":
		if len(args) != 1 {
			fmt.Println("Usage: admin delete-station <id>")
			os.Exit(1)
		}
		if err = store.DeleteStation(ctx, args[0]); err == nil {
			fmt.Printf("Station %s has been deleted.\n", args[0])
		}
	default:
		fmt.Println("Unknown command")
		fmt.Println(usage)
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}
