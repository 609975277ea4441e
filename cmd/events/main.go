package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"marknote-be/pkg/events"
	pktNats "marknote-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

// events tails resource events relayed to NATS JetStream.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	subject := flag.String("subject", pktNats.SubjectWildcard, "subject filter, e.g. events.RESOURCE_CREATED")
	durable := flag.String("durable", "", "durable consumer name; empty tails new events only")
	flag.Parse()

	url := os.Getenv("NATS_URL")
	if url == "" {
		color.Red("Error: NATS_URL is not set")
		os.Exit(1)
	}

	sub, err := pktNats.NewSubscriber(url)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = sub.Subscribe(ctx, *subject, *durable, func(_ context.Context, event events.Event) error {
		data := event.Payload()
		fmt.Printf("%s  %s  %s %v  %s %v\n",
			faint(event.Timestamp().Format("2006-01-02 15:04:05")),
			bold(event.EventType()),
			faint("kind:"), cyan(data["kind"]),
			faint("id:"), data["id"],
		)
		return nil
	})
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	color.Cyan("Listening on %s (Ctrl+C to stop)", *subject)
	<-ctx.Done()
}
