package granary

import "github.com/rs/zerolog"

// Config holds package-level configuration consulted when new storages
// and worlds are built.
var Config config = config{}

type config struct {
	log *zerolog.Logger
}

// SetLogger routes storage and world events to the given logger.
// Storages built before the call keep the logger they were built with.
func (c *config) SetLogger(logger zerolog.Logger) {
	c.log = &logger
}

func (c *config) logger() Logger {
	if c.log == nil {
		nop := zerolog.Nop()
		return Logger{&nop}
	}
	return Logger{c.log}
}
