package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/uncharted-waters/tradedb/internal/config"
	"github.com/uncharted-waters/tradedb/internal/culture"
	"github.com/uncharted-waters/tradedb/internal/fetcher"
	"github.com/uncharted-waters/tradedb/internal/model"
	"github.com/uncharted-waters/tradedb/internal/registry"
)

// Pipeline turns the two source tables into a TradeDatabase.
type Pipeline struct {
	cfg *config.Config
	reg *registry.Registry
	now func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock fixes the creation timestamp source, e.g. for reproducible output.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New creates a Pipeline over the given config and lookup tables.
func New(cfg *config.Config, reg *registry.Registry, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg, reg: reg, now: time.Now}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Result is a generated document plus every anomaly found producing it.
type Result struct {
	Database *model.TradeDatabase
	Report   *model.Report
}

// Run reads both source tables, then normalizes and assembles them. Only an
// unreadable source or a structurally unusable table is an error; data
// problems are collected in Result.Report.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	src := p.cfg.Source

	cityTable, err := fetcher.ReadTable(ctx, src.Cities, fetcher.Options{Sheet: src.CitySheet})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: read city table")
	}
	priceTable, err := fetcher.ReadTable(ctx, src.Prices, fetcher.Options{Sheet: src.PriceSheet})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: read price table")
	}

	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: run")
	}

	report := &model.Report{}

	records, err := DecodeCities(cityTable, report)
	if err != nil {
		return nil, err
	}
	builder := &CityBuilder{
		Resolver: culture.NewResolver(p.reg.Overrides, p.reg.Inferred),
		Mapper:   p.reg.Mapper,
	}
	cities := builder.Build(records, report)

	pivot, err := PivotPrices(priceTable, p.reg.Mapper, report)
	if err != nil {
		return nil, err
	}

	db, err := Assemble(AssembleInput{
		Header: Header{
			Title:       p.cfg.Metadata.Title,
			Description: p.cfg.Metadata.Description,
			Version:     p.cfg.Metadata.Version,
		},
		Sources: model.Sources{
			Cities: fetcher.SourceName(src.Cities),
			Prices: fetcher.SourceName(src.Prices),
		},
		Created: p.now(),
		Mapper:  p.reg.Mapper,
		Cities:  cities,
		Pivot:   pivot,
	}, report)
	if err != nil {
		return nil, err
	}

	zap.L().Info("pipeline: assembled database",
		zap.String("id", db.Metadata.ID),
		zap.String("tables", p.reg.Source),
		zap.Int("cities", len(db.Cities)),
		zap.Int("items", len(db.Items)),
		zap.Int("categories", len(db.Categories)),
		zap.Int("anomalies", report.Len()),
	)

	return &Result{Database: db, Report: report}, nil
}
