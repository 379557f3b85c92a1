package cli

import (
	"fmt"

	coreapp "undoc/internal/core/app"
	"undoc/internal/core/config"
	"undoc/internal/core/ports"
)

type analysisFactory interface {
	New(cfg *config.Config) (ports.AnalysisService, error)
}

type coreAnalysisFactory struct{}

func (coreAnalysisFactory) New(cfg *config.Config) (ports.AnalysisService, error) {
	app, err := coreapp.New(cfg)
	if err != nil {
		return nil, err
	}
	return app.AnalysisService(), nil
}

func initializeAnalysis(cfg *config.Config, factory analysisFactory) (ports.AnalysisService, error) {
	if factory == nil {
		return nil, fmt.Errorf("analysis factory is required")
	}
	return factory.New(cfg)
}
