package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/astrosetu/astrosetu-backend/internal/astro"
	"github.com/astrosetu/astrosetu-backend/internal/astro/prediction"
	"github.com/astrosetu/astrosetu-backend/internal/data/repos"
	"github.com/astrosetu/astrosetu-backend/internal/data/repos/testutil"
	types "github.com/astrosetu/astrosetu-backend/internal/domain"
	"github.com/astrosetu/astrosetu-backend/internal/platform/errs"
	"github.com/astrosetu/astrosetu-backend/internal/platform/logger"
)

type fixture struct {
	db           *gorm.DB
	log          *logger.Logger
	profileRepo  repos.BirthProfileRepo
	persRepo     repos.PersonalizationRepo
	feedbackRepo repos.FeedbackRepo
	familyRepo   repos.FamilyGroupRepo
	registration RegistrationService
	guidance     GuidanceService
	feedback     FeedbackService
	family       FamilyService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	f := &fixture{
		db:           db,
		log:          log,
		profileRepo:  repos.NewBirthProfileRepo(db, log),
		persRepo:     repos.NewPersonalizationRepo(db, log),
		feedbackRepo: repos.NewFeedbackRepo(db, log),
		familyRepo:   repos.NewFamilyGroupRepo(db, log),
	}
	astrology := NewAstrologyService(log)
	f.registration = NewRegistrationService(db, log, f.profileRepo, f.persRepo)
	f.guidance = NewGuidanceService(log, f.profileRepo, f.persRepo, astrology, nil)
	f.feedback = NewFeedbackService(db, log, f.feedbackRepo, f.persRepo)
	f.family = NewFamilyService(log, f.familyRepo, f.profileRepo, f.persRepo, astrology)
	return f
}

func registerMumbai(t *testing.T, f *fixture, name string) *types.BirthProfile {
	t.Helper()
	p, err := f.registration.Register(context.Background(), RegistrationInput{
		FullName:   name,
		BirthDate:  "1990-05-15",
		BirthTime:  "14:30",
		BirthPlace: "Mumbai",
		Language:   "hi",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return p
}

func TestRegisterResolvesGazetteerAndSeedsState(t *testing.T) {
	f := newFixture(t)
	p := registerMumbai(t, f, "Asha Kulkarni")

	if !p.HasBirthTime {
		t.Fatal("birth time was given and must be recorded")
	}
	// 14:30 IST is 09:00 UTC.
	if got := p.BirthUTC; !got.Equal(time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("birth utc = %s, want 1990-05-15T09:00Z", got)
	}
	if p.Lat == 0 || p.Lon == 0 || p.Timezone != "Asia/Kolkata" {
		t.Fatalf("gazetteer resolution incomplete: %+v", p)
	}

	st, err := f.persRepo.GetBySubject(context.Background(), nil, p.SubjectID)
	if err != nil {
		t.Fatalf("personalization state must exist after registration: %v", err)
	}
	if st.Version != 1 {
		t.Fatalf("state version = %d, want 1", st.Version)
	}
}

func TestRegisterWithoutBirthTime(t *testing.T) {
	f := newFixture(t)
	p, err := f.registration.Register(context.Background(), RegistrationInput{
		FullName:   "Ravi Sharma",
		BirthDate:  "1975-08-22",
		BirthPlace: "delhi",
	})
	if err != nil {
		t.Fatalf("missing birth time must not fail registration: %v", err)
	}
	if p.HasBirthTime {
		t.Fatal("has_birth_time must be false")
	}
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name string
		in   RegistrationInput
	}{
		{"empty_name", RegistrationInput{BirthDate: "1990-05-15", BirthPlace: "Mumbai"}},
		{"bad_date", RegistrationInput{FullName: "A", BirthDate: "15-05-1990", BirthPlace: "Mumbai"}},
		{"unknown_place", RegistrationInput{FullName: "A", BirthDate: "1990-05-15", BirthPlace: "Atlantis"}},
		{"bad_time", RegistrationInput{FullName: "A", BirthDate: "1990-05-15", BirthTime: "2pm", BirthPlace: "Mumbai"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.registration.Register(context.Background(), tc.in); !errors.Is(err, errs.ErrInvalidInput) {
				t.Fatalf("want ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestPredictEndToEnd(t *testing.T) {
	f := newFixture(t)
	p := registerMumbai(t, f, "Asha Kulkarni")

	at := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	g, err := f.guidance.Predict(context.Background(), p.SubjectID, prediction.Daily, at)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if g.PredictionID == "" {
		t.Fatal("prediction id must be set")
	}
	if g.Remedy.Primary.Key == "" {
		t.Fatal("remedy selection must carry a primary remedy")
	}
	if len(g.Remedy.Warnings) == 0 {
		t.Fatal("warnings must never be empty; absence uses the sentinel")
	}

	again, err := f.guidance.Predict(context.Background(), p.SubjectID, prediction.Daily, at)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if again.PredictionID != g.PredictionID {
		t.Fatalf("prediction id drifted: %s vs %s", again.PredictionID, g.PredictionID)
	}
}

func TestPredictUnknownSubject(t *testing.T) {
	f := newFixture(t)
	_, err := f.guidance.Predict(context.Background(), uuid.New(), prediction.Daily, time.Now())
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestFeedbackUpdatesWeights(t *testing.T) {
	f := newFixture(t)
	p := registerMumbai(t, f, "Asha Kulkarni")
	ctx := context.Background()

	at := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	g, err := f.guidance.Predict(ctx, p.SubjectID, prediction.Daily, at)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	before, err := f.persRepo.GetBySubject(ctx, nil, p.SubjectID)
	if err != nil {
		t.Fatalf("GetBySubject: %v", err)
	}

	rec, err := f.feedback.Submit(ctx, p.SubjectID, g.PredictionID, 9, "accurate")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Fatal("feedback record not persisted")
	}

	after, err := f.persRepo.GetBySubject(ctx, nil, p.SubjectID)
	if err != nil {
		t.Fatalf("GetBySubject: %v", err)
	}
	if after.Version != before.Version+1 {
		t.Fatalf("state version %d -> %d, want +1", before.Version, after.Version)
	}
}

func TestFeedbackUnknownPredictionIsRecordedButNoop(t *testing.T) {
	f := newFixture(t)
	p := registerMumbai(t, f, "Asha Kulkarni")
	ctx := context.Background()

	before, err := f.persRepo.GetBySubject(ctx, nil, p.SubjectID)
	if err != nil {
		t.Fatalf("GetBySubject: %v", err)
	}
	if _, err := f.feedback.Submit(ctx, p.SubjectID, "garbage-reference", 9, ""); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	after, err := f.persRepo.GetBySubject(ctx, nil, p.SubjectID)
	if err != nil {
		t.Fatalf("GetBySubject: %v", err)
	}
	if after.Version != before.Version {
		t.Fatal("unknown prediction reference must leave the weights untouched")
	}

	records, err := f.feedbackRepo.ListBySubject(ctx, nil, p.SubjectID, 0)
	if err != nil {
		t.Fatalf("ListBySubject: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("feedback must still be recorded, got %d rows", len(records))
	}
}

func TestFeedbackRejectsBadRating(t *testing.T) {
	f := newFixture(t)
	p := registerMumbai(t, f, "Asha Kulkarni")
	if _, err := f.feedback.Submit(context.Background(), p.SubjectID, "x", 11, ""); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestFamilyReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := registerMumbai(t, f, "Asha Kulkarni")
	b, err := f.registration.Register(ctx, RegistrationInput{
		FullName:   "Nikhil Deshpande",
		BirthDate:  "1985-02-01",
		BirthTime:  "06:30",
		BirthPlace: "bangalore",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	group, err := f.familyRepo.Create(ctx, nil, &types.FamilyGroup{Name: "kulkarni"})
	if err != nil {
		t.Fatalf("Create group: %v", err)
	}
	for _, subject := range []uuid.UUID{a.SubjectID, b.SubjectID} {
		if _, err := f.familyRepo.AddMember(ctx, nil, &types.FamilyMember{
			GroupID:   group.ID,
			SubjectID: subject,
		}); err != nil {
			t.Fatalf("AddMember: %v", err)
		}
	}

	report, err := f.family.Report(ctx, group.ID, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if report.Harmony < 0 || report.Harmony > 100 {
		t.Fatalf("harmony %f out of [0,100]", report.Harmony)
	}
	if report.Remedy.Key == "" {
		t.Fatal("consolidated remedy must be set")
	}
	if len(report.Warnings) == 0 {
		t.Fatal("warnings must never be empty; absence uses the sentinel")
	}
}

func TestFamilyReportMissingGroup(t *testing.T) {
	f := newFixture(t)
	if _, err := f.family.Report(context.Background(), uuid.New(), time.Now()); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPredictionIDRoundTrip(t *testing.T) {
	w, err := prediction.NewWindow(prediction.Weekly, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	res := prediction.Result{
		Focus:     &prediction.Slot{Category: astro.CategoryHealth},
		Challenge: &prediction.Slot{Category: astro.CategoryWealth},
	}
	id := encodePredictionID(w, res)
	got := decodePredictionCategories(id)
	if len(got) != 2 || got[0] != astro.CategoryHealth || got[1] != astro.CategoryWealth {
		t.Fatalf("round trip = %v, want [health wealth]", got)
	}

	for _, bad := range []string{"", "x", "daily:2024-06-10", "hourly:2024-06-10:health", "daily:junk:health", "daily:2024-06-10:fame"} {
		if cats := decodePredictionCategories(bad); cats != nil {
			t.Fatalf("decode(%q) = %v, want nil", bad, cats)
		}
	}
}

func TestLookupCity(t *testing.T) {
	if _, ok := LookupCity("  MUMBAI "); !ok {
		t.Fatal("city lookup must be case and space insensitive")
	}
	if _, ok := LookupCity("atlantis"); ok {
		t.Fatal("unknown city must not resolve")
	}
}
