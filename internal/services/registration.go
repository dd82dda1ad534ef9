package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/astrosetu/astrosetu-backend/internal/data/repos"
	types "github.com/astrosetu/astrosetu-backend/internal/domain"
	"github.com/astrosetu/astrosetu-backend/internal/platform/errs"
	"github.com/astrosetu/astrosetu-backend/internal/platform/logger"
)

// RegistrationInput is the external contract: dates are ISO strings, the
// birth place resolves through the bundled gazetteer.
type RegistrationInput struct {
	FullName     string `json:"full_name"`
	BirthDate    string `json:"birth_date"`           // 2006-01-02
	BirthTime    string `json:"birth_time,omitempty"` // 15:04, optional
	BirthPlace   string `json:"birth_place"`
	Relationship string `json:"relationship,omitempty"`
	Language     string `json:"language,omitempty"`
}

type RegistrationService interface {
	Register(ctx context.Context, in RegistrationInput) (*types.BirthProfile, error)
}

type registrationService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo repos.BirthProfileRepo
	persRepo    repos.PersonalizationRepo
}

func NewRegistrationService(
	db *gorm.DB,
	log *logger.Logger,
	profileRepo repos.BirthProfileRepo,
	persRepo repos.PersonalizationRepo,
) RegistrationService {
	return &registrationService{
		db:          db,
		log:         log.With("service", "RegistrationService"),
		profileRepo: profileRepo,
		persRepo:    persRepo,
	}
}

// Register validates the input, resolves the birth place and creates the
// profile together with its default personalization state in one
// transaction. A missing birth time is accepted and recorded, never an
// error.
func (s *registrationService) Register(ctx context.Context, in RegistrationInput) (*types.BirthProfile, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return nil, fmt.Errorf("%w: full name required", errs.ErrInvalidInput)
	}
	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(in.BirthDate), time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: birth date %q not ISO (2006-01-02)", errs.ErrInvalidInput, in.BirthDate)
	}
	city, ok := LookupCity(in.BirthPlace)
	if !ok {
		return nil, fmt.Errorf("%w: unknown birth place %q", errs.ErrInvalidInput, in.BirthPlace)
	}

	birthUTC := date
	hasTime := false
	if strings.TrimSpace(in.BirthTime) != "" {
		clock, err := time.Parse("15:04", strings.TrimSpace(in.BirthTime))
		if err != nil {
			return nil, fmt.Errorf("%w: birth time %q not HH:MM", errs.ErrInvalidInput, in.BirthTime)
		}
		loc, err := time.LoadLocation(city.Timezone)
		if err != nil {
			return nil, fmt.Errorf("failed to load timezone %q: %w", city.Timezone, err)
		}
		local := time.Date(date.Year(), date.Month(), date.Day(),
			clock.Hour(), clock.Minute(), 0, 0, loc)
		birthUTC = local.UTC()
		hasTime = true
	}

	profile := &types.BirthProfile{
		FullName:     strings.TrimSpace(in.FullName),
		BirthUTC:     birthUTC,
		HasBirthTime: hasTime,
		Lat:          city.Lat,
		Lon:          city.Lon,
		Timezone:     city.Timezone,
		PlaceName:    strings.ToLower(strings.TrimSpace(in.BirthPlace)),
		Relationship: in.Relationship,
		Language:     in.Language,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.profileRepo.Create(ctx, tx, profile); err != nil {
			return err
		}
		state, err := defaultPersonalizationState(profile.SubjectID)
		if err != nil {
			return err
		}
		_, err = s.persRepo.Create(ctx, tx, state)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("registered birth profile",
		"subject_id", profile.SubjectID, "place", profile.PlaceName, "has_birth_time", hasTime)
	return profile, nil
}
