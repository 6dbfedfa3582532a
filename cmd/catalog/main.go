// Command catalog loads the default exercise and program catalog into the
// configured database and prints the stored default programs.
//
//	catalog seed --file catalog.yaml [--dry-run]
//	catalog show
package main

import (
	"alcyxob/fitness-tracker/internal/api"
	"alcyxob/fitness-tracker/internal/catalog"
	"alcyxob/fitness-tracker/internal/config"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/repository/memory"
	"alcyxob/fitness-tracker/internal/repository/mongo"
	"alcyxob/fitness-tracker/internal/service"
	"alcyxob/fitness-tracker/internal/storage"
	"context"
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	var err error
	switch os.Args[1] {
	case "seed":
		err = runSeed(os.Args[2:])
	case "show":
		err = runShow(os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: catalog seed --file <catalog.yaml> [--dry-run] | catalog show")
	os.Exit(2)
}

func runSeed(args []string) error {
	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	file := flags.StringP("file", "f", "catalog.yaml", "catalog YAML file")
	dryRun := flags.Bool("dry-run", false, "validate and seed into a throwaway in-memory store")
	if err := flags.Parse(args); err != nil {
		return err
	}

	c, err := catalog.Load(*file)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store := memory.NewStore()
	if !*dryRun {
		var closeStore func() error
		store, closeStore, err = openConfiguredStore()
		if err != nil {
			return err
		}
		defer closeStore()
	}

	summary, err := catalog.Seed(ctx, store, c)
	if err != nil {
		return err
	}
	fmt.Printf("exercises: %d, media: %d, programs: %d, days: %d\n",
		summary.Exercises, summary.Media, summary.Programs, summary.Days)
	return nil
}

func runShow(args []string) error {
	flags := pflag.NewFlagSet("show", pflag.ExitOnError)
	if err := flags.Parse(args); err != nil {
		return err
	}

	store, closeStore, err := openConfiguredStore()
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()
	programs := service.NewProgramService(service.Dependencies{
		Store:   store,
		Files:   storage.NewMemoryStorage(""),
		Metrics: metrics.NewDiscardManager(),
	})
	list, err := programs.ListPrograms(ctx, "", []domain.ProgramKind{domain.ProgramDefault})
	if err != nil {
		return err
	}
	defaults, _ := list.Get(domain.ProgramDefault.String())

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	for _, program := range defaults {
		detail, err := programs.GetProgram(ctx, "", domain.ProgramDefault, program.ID.Hex())
		if err != nil {
			return err
		}
		if err := encoder.Encode(api.MapProgramDetailToResponse(detail)); err != nil {
			return err
		}
	}
	return nil
}

func openConfiguredStore() (repository.Store, func() error, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return repository.Store{}, nil, err
	}
	if cfg.Database.Driver == config.DriverMemory {
		return repository.Store{}, nil, fmt.Errorf("database.driver is %s, nothing would persist", cfg.Database.Driver)
	}

	client, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		return repository.Store{}, nil, err
	}
	db := client.Database(cfg.Database.Name)
	mongo.EnsureIndexes(context.Background(), db)
	return mongo.NewStore(client, db), func() error { return mongo.DisconnectDB(client) }, nil
}
