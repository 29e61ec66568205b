// Command particles-bench times the entity layouts and sorting algorithms
// over a size sweep and logs the results.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := NewRootCmd(cfg).Execute(); err != nil {
		log.Error().Err(err).Msg("particles-bench failed")
		os.Exit(1)
	}
}
