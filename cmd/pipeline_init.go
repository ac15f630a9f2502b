package main

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/uncharted-waters/tradedb/internal/config"
	"github.com/uncharted-waters/tradedb/internal/pipeline"
	"github.com/uncharted-waters/tradedb/internal/registry"
)

// sourceFlags are the input overrides shared by generate and check.
type sourceFlags struct {
	Cities  string
	Prices  string
	Tables  string
	Created string
}

// apply copies non-empty flag values over the loaded config.
func (f sourceFlags) apply(c *config.Config) {
	if f.Cities != "" {
		c.Source.Cities = f.Cities
	}
	if f.Prices != "" {
		c.Source.Prices = f.Prices
	}
	if f.Tables != "" {
		c.Tables.Path = f.Tables
	}
}

// initPipeline validates the config, loads the lookup tables, and builds the
// Pipeline. A --created value pins the creation timestamp.
func initPipeline(c *config.Config, f sourceFlags) (*pipeline.Pipeline, error) {
	f.apply(c)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	reg, err := registry.Load(c.Tables.Path)
	if err != nil {
		return nil, eris.Wrap(err, "load lookup tables")
	}
	zap.L().Debug("loaded lookup tables",
		zap.String("source", reg.Source),
		zap.String("version", reg.Version),
		zap.Int("overrides", len(reg.Overrides)),
		zap.Int("inferred", len(reg.Inferred)),
	)

	var opts []pipeline.Option
	if f.Created != "" {
		created, err := time.Parse(time.RFC3339, f.Created)
		if err != nil {
			return nil, eris.Wrapf(err, "parse --created %q", f.Created)
		}
		opts = append(opts, pipeline.WithClock(func() time.Time { return created }))
	}

	return pipeline.New(c, reg, opts...), nil
}
