package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Scusemua/go-utils/config"
	"github.com/pkg/errors"

	"github.com/scusemua/chained-hashmap/common/configuration"
	"github.com/scusemua/chained-hashmap/common/hashmap"
	"github.com/scusemua/chained-hashmap/common/metrics"
	"github.com/scusemua/chained-hashmap/common/utils"
	"github.com/scusemua/chained-hashmap/shell/internal/console"
)

var (
	options = configuration.DefaultShellOptions()
)

// ValidateOptions ensures that the options/configuration is valid.
func ValidateOptions() {
	flags, err := config.ValidateOptions(options)
	if errors.Is(err, config.ErrPrintUsage) {
		flags.PrintDefaults()
		os.Exit(0)
	} else if err != nil {
		log.Fatal(err)
	}
}

func main() {
	ValidateOptions()

	// Created after the options are validated so that -debug takes effect.
	globalLogger := config.GetLogger("")

	if options.PrettyPrintOptions {
		globalLogger.Info("Shell options:\n%s", options.PrettyString(2))
	} else {
		globalLogger.Debug("Shell options: %s", options.String())
	}

	store, err := hashmap.NewStore[string](options.Backend, &options.MapOptions)
	if err != nil {
		log.Fatalf("Failed to create \"%s\" map: %v", options.Backend, err)
	}

	if options.PrometheusPort > 0 {
		observable, ok := store.(hashmap.Observable)
		if !ok {
			log.Fatalf("Prometheus metrics are not supported by the \"%s\" backend", options.Backend)
		}

		manager, err := metrics.NewPrometheusManager(options.PrometheusPort, options.Backend)
		if err != nil {
			log.Fatalf("Failed to create Prometheus manager: %v", err)
		}

		if err = manager.Start(); err != nil {
			log.Fatalf("Failed to start Prometheus manager: %v", err)
		}
		defer func() {
			_ = manager.Stop()
		}()

		observable.SetObserver(manager)
		globalLogger.Info("Serving Prometheus metrics on port %d.", options.PrometheusPort)
	}

	banner := fmt.Sprintf("Chained hash map shell (backend: %s). Type 'help' for available commands.", options.Backend)
	if options.Styled {
		banner = utils.YellowStyle.Render(banner)
	}
	fmt.Println(banner)

	if err := console.New(store, os.Stdout, options.Styled).Run(os.Stdin); err != nil {
		globalLogger.Error("Shell terminated: %v", err)
	}
}
