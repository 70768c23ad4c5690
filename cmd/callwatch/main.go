// Command callwatch reads call state transitions from stdin and reports
// unanswered calls to the notification service.
//
// Input is one transition per line:
//
//	RINGING +919999999999
//	OFFHOOK
//	IDLE
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/callwatch"
)

func main() {
	defaultServer := os.Getenv("CALLWATCH_SERVER_URL")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}

	server := flag.String("server", defaultServer, "notification service base URL")
	timeout := flag.Duration("timeout", 15*time.Second, "per-report request timeout")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Watching calls, reporting to %s%s", *server, callwatch.MissedCallPath)

	reporter := callwatch.NewReporter(*server, *timeout)
	if err := callwatch.Watch(ctx, os.Stdin, callwatch.NewTracker(), reporter); err != nil && ctx.Err() == nil {
		log.Fatalf("callwatch stopped: %v", err)
	}
}
