package services

import (
	"github.com/astrosetu/astrosetu-backend/internal/astro/chart"
	"github.com/astrosetu/astrosetu-backend/internal/astro/lalkitab"
	"github.com/astrosetu/astrosetu-backend/internal/astro/numerology"
	types "github.com/astrosetu/astrosetu-backend/internal/domain"
	"github.com/astrosetu/astrosetu-backend/internal/platform/logger"
)

// ChartBundle is everything the downstream engines derive from one birth
// profile. Bundles are recomputed on demand and never persisted.
type ChartBundle struct {
	Chart      *chart.BirthChart
	Numerology numerology.Profile
	Findings   []lalkitab.Finding
	Manglik    bool
}

type AstrologyService interface {
	Bundle(profile *types.BirthProfile) (*ChartBundle, error)
}

type astrologyService struct {
	log *logger.Logger
}

func NewAstrologyService(log *logger.Logger) AstrologyService {
	return &astrologyService{log: log.With("service", "AstrologyService")}
}

func (s *astrologyService) Bundle(profile *types.BirthProfile) (*ChartBundle, error) {
	c, err := chart.Build(chart.Input{
		BirthUTC:     profile.BirthUTC,
		HasBirthTime: profile.HasBirthTime,
		Lat:          profile.Lat,
		Lon:          profile.Lon,
	})
	if err != nil {
		return nil, err
	}
	num, err := numerology.Calculate(profile.FullName, profile.BirthUTC)
	if err != nil {
		return nil, err
	}
	return &ChartBundle{
		Chart:      c,
		Numerology: num,
		Findings:   lalkitab.Evaluate(c),
		Manglik:    lalkitab.IsManglik(c),
	}, nil
}
