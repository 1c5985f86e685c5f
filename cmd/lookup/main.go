// Command lookup resolves one distance lookup from the command line and prints
// the results as JSON. Client options come from the same DISTANCE_MATRIX_*
// environment variables the service reads; a .env file in the working
// directory is loaded first when present.
//
// Usage:
//
//	go run ./cmd/lookup \
//	  -origin "Vancouver BC" -origin Seattle \
//	  -dest "San Francisco" -dest-latlng 48.4284,-123.3656
//
// A flag given once is a single value; repeating it makes a list, in which
// malformed coordinates are dropped with a warning instead of failing.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/couchcryptid/distance-matrix-service/internal/adapter/distancematrix"
	"github.com/couchcryptid/distance-matrix-service/internal/config"
	"github.com/couchcryptid/distance-matrix-service/internal/domain"
	"github.com/couchcryptid/distance-matrix-service/internal/observability"
	"github.com/joho/godotenv"
)

// multiFlag collects every occurrence of a repeatable flag.
type multiFlag []string

func (f *multiFlag) String() string { return strings.Join(*f, "|") }

func (f *multiFlag) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func (f multiFlag) source() domain.Source {
	switch len(f) {
	case 0:
		return domain.Source{}
	case 1:
		return domain.One(f[0])
	default:
		return domain.Many(f...)
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var origins, originCoords, dests, destCoords multiFlag
	flag.Var(&origins, "origin", "origin address (repeatable)")
	flag.Var(&originCoords, "origin-latlng", "origin coordinate as lat,lng (repeatable)")
	flag.Var(&dests, "dest", "destination address (repeatable)")
	flag.Var(&destCoords, "dest-latlng", "destination coordinate as lat,lng (repeatable)")
	printURL := flag.Bool("print-url", false, "print the request URL, API key included, instead of calling the service")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := observability.NewLogger(cfg)

	client, err := distancematrix.NewClient(distancematrix.Settings{
		APIKey:  cfg.DistanceMatrixAPIKey,
		BaseURL: cfg.DistanceMatrixBaseURL,
		Timeout: cfg.DistanceMatrixTimeout,
		Options: cfg.DistanceMatrixOptions,
	}, logger, observability.NewMetrics())
	if err != nil {
		return err
	}

	in := domain.LookupInput{
		OriginAddresses:        origins.source(),
		OriginCoordinates:      originCoords.source(),
		DestinationAddresses:   dests.source(),
		DestinationCoordinates: destCoords.source(),
	}

	if *printURL {
		u, err := client.RequestURL(in)
		if err != nil {
			return err
		}
		fmt.Println(u)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := client.Distances(ctx, in)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
