// Command realm-cli drives the realm services from a terminal.
//
// Usage:
//
//	realm-cli [-auth-url URL] [-game-url URL] [-timeout D] <command> <username> <password> [building]
//
// Commands:
//
//	register  create an account
//	state     show resources, building levels and the next collection time
//	collect   collect resources (once per hour)
//	build     upgrade sawmill, quarry or mine
//
// Every command except register logs in first.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/MKhiriev/go-realm/internal/adapter"
	"github.com/MKhiriev/go-realm/internal/config"
	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/models"
)

var errUsage = errors.New("usage: realm-cli [flags] <register|state|collect|build> <username> <password> [building]")

func main() {
	log := logger.NewConsoleLogger("realm-cli")

	cfg, args, err := config.GetClientConfig(os.Args[0], os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	client, err := adapter.NewHTTPRealmClient(*cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err = run(ctx, client, args, os.Stdout); err != nil {
		stop()
		log.Fatal().Err(err).Send()
	}
}

func run(ctx context.Context, client adapter.RealmClient, args []string, out io.Writer) error {
	if len(args) < 3 {
		return errUsage
	}

	command := args[0]
	credentials := models.Credentials{Username: args[1], Password: args[2]}

	if command == "register" {
		resp, err := client.Register(ctx, credentials)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n", resp.Message)
		return nil
	}

	if _, err := client.Login(ctx, credentials); err != nil {
		return err
	}

	switch command {
	case "state":
		state, err := client.State(ctx)
		if err != nil {
			return err
		}
		printState(out, state)
	case "collect":
		resources, err := client.Collect(ctx)
		if errors.Is(err, adapter.ErrTooManyRequests) {
			fmt.Fprintln(out, "Resources were already collected within the last hour.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Collected. Wood: %d, stone: %d, gold: %d\n", resources.Wood, resources.Stone, resources.Gold)
	case "build":
		if len(args) < 4 {
			return errUsage
		}
		buildingType, err := models.ParseBuildingType(args[3])
		if err != nil {
			return err
		}
		buildings, err := client.Build(ctx, buildingType)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s is now level %d\n", buildingType, buildingType.Level(buildings))
	default:
		return fmt.Errorf("unknown command %q: %w", command, errUsage)
	}

	return nil
}

func printState(out io.Writer, state models.StateResponse) {
	fmt.Fprintf(out, "Player: %s\n", state.Username)
	fmt.Fprintf(out, "Wood: %d, stone: %d, gold: %d\n", state.Resources.Wood, state.Resources.Stone, state.Resources.Gold)
	fmt.Fprintf(out, "Sawmill: %d, quarry: %d, mine: %d\n",
		state.Buildings.SawmillLevel, state.Buildings.QuarryLevel, state.Buildings.MineLevel)
	if state.CanCollect {
		fmt.Fprintln(out, "Resources are ready to collect.")
	} else {
		fmt.Fprintf(out, "Next collection at %s\n", state.NextCollectAt.Local().Format(time.Kitchen))
	}
}
