package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/astrosetu/astrosetu-backend/internal/astro"
	"github.com/astrosetu/astrosetu-backend/internal/astro/family"
	"github.com/astrosetu/astrosetu-backend/internal/astro/remedy"
	"github.com/astrosetu/astrosetu-backend/internal/data/repos"
	"github.com/astrosetu/astrosetu-backend/internal/platform/logger"
)

type FamilyService interface {
	Report(ctx context.Context, groupID uuid.UUID, at time.Time) (*family.Report, error)
}

type familyService struct {
	log         *logger.Logger
	familyRepo  repos.FamilyGroupRepo
	profileRepo repos.BirthProfileRepo
	persRepo    repos.PersonalizationRepo
	astrology   AstrologyService
}

func NewFamilyService(
	log *logger.Logger,
	familyRepo repos.FamilyGroupRepo,
	profileRepo repos.BirthProfileRepo,
	persRepo repos.PersonalizationRepo,
	astrology AstrologyService,
) FamilyService {
	return &familyService{
		log:         log.With("service", "FamilyService"),
		familyRepo:  familyRepo,
		profileRepo: profileRepo,
		persRepo:    persRepo,
		astrology:   astrology,
	}
}

// Report computes every member's guidance concurrently and aggregates it.
// Member computations are independent, so the fan-out is bounded only by the
// group size; the first failing member cancels the rest.
func (s *familyService) Report(ctx context.Context, groupID uuid.UUID, at time.Time) (*family.Report, error) {
	if _, err := s.familyRepo.Get(ctx, nil, groupID); err != nil {
		return nil, err
	}
	members, err := s.familyRepo.ListMembers(ctx, nil, groupID)
	if err != nil {
		return nil, err
	}
	subjectIDs := make([]uuid.UUID, len(members))
	for i, m := range members {
		subjectIDs[i] = m.SubjectID
	}
	profiles, err := s.profileRepo.GetBySubjects(ctx, nil, subjectIDs)
	if err != nil {
		return nil, err
	}

	results := make([]family.Member, len(profiles))
	g, gctx := errgroup.WithContext(ctx)
	for i, profile := range profiles {
		g.Go(func() error {
			bundle, err := s.astrology.Bundle(profile)
			if err != nil {
				return err
			}
			prof := stateProfileOrDefault(gctx, s.persRepo, profile.SubjectID)
			sel := remedy.Select(remedy.Params{
				Findings: bundle.Findings,
				Profile:  prof,
				Now:      at,
			})
			results[i] = family.Member{
				ID:       profile.SubjectID.String(),
				MoonSign: bundle.Chart.Signs[astro.Moon],
				LifePath: bundle.Numerology.LifePath,
				Findings: bundle.Findings,
				Remedy:   sel.Primary,
				Warnings: sel.Warnings,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report, err := family.Aggregate(results)
	if err != nil {
		return nil, err
	}
	s.log.Info("family report computed", "group_id", groupID, "members", len(results))
	return &report, nil
}
