package telemetry

import (
	"fmt"

	domain "github.com/whopu/challenge/pkg/domain/telemetry"
	factory "github.com/whopu/challenge/pkg/infra/telemetry"
)

type ExportersBuilder interface {
	Build(configs []domain.ExporterConfig) ([]domain.Exporter, error)
}

type exportersBuilder struct {
	locator *factory.ExporterLocator
}

func NewExportersBuilder(locator *factory.ExporterLocator) ExportersBuilder {
	return &exportersBuilder{
		locator: locator,
	}
}

func (b *exportersBuilder) Build(configs []domain.ExporterConfig) ([]domain.Exporter, error) {
	exporters := make([]domain.Exporter, 0, len(configs))
	for _, cfg := range configs {
		exp, err := b.locator.GetExporter(cfg)
		if err != nil {
			for _, built := range exporters {
				built.Close()
			}
			return nil, fmt.Errorf("exporter %q: %w", cfg.Name, err)
		}
		exporters = append(exporters, exp)
	}
	return exporters, nil
}
