package particles

import (
	"github.com/TheBitDrifter/table"
	"github.com/rs/zerolog"
)

// Config holds global configuration for storages and pipelines
var Config config = config{
	logger: zerolog.Nop(),
}

type config struct {
	tableEvents table.TableEvents
	logger      zerolog.Logger
}

// SetTableEvents configures the table event callbacks
func (c *config) SetTableEvents(te table.TableEvents) {
	c.tableEvents = te
}

// SetLogger sets the logger new pipelines inherit unless built with their own
func (c *config) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}

// Logger returns the logger new pipelines inherit
func (c *config) Logger() zerolog.Logger {
	return c.logger
}
