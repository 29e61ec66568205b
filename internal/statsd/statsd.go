// Package statsd wraps the few statsd calls the pipeline makes so the DataDog
// dependency stays in one file.
package statsd

import (
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

var client ddstatsd.ClientInterface = &ddstatsd.NoOpClient{}

func Client() ddstatsd.ClientInterface {
	return client
}

// EmitStageStat reports how long a pipeline stage took, tagged with its name.
func EmitStageStat(start time.Time, stage string) {
	duration := time.Since(start)
	err := Client().Timing("stage", duration, []string{"stage:" + stage}, 1)
	if err != nil {
		log.Logger.Warn().Msgf("failed to emit stage stat: %v", err)
	}
}

func Init(address string, tags []string) error {
	if address == "" {
		return eris.New("address must not be empty")
	}
	opts := []ddstatsd.Option{
		ddstatsd.WithNamespace("particles"),
	}
	if len(tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(tags))
	}

	newClient, err := ddstatsd.New(address, opts...)
	if err != nil {
		return eris.Wrap(err, "failed to create statsd client")
	}
	client = newClient
	return nil
}

// Close flushes and closes the active client and restores the no-op client.
func Close() error {
	err := client.Close()
	client = &ddstatsd.NoOpClient{}
	if err != nil {
		return eris.Wrap(err, "failed to close statsd client")
	}
	return nil
}
