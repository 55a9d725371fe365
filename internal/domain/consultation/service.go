package consultation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quickmed/quickmed/internal/platform/apperr"
)

// historyLimit caps the page size of a history request.
const historyLimit = 10

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SaveInput carries one consultation outcome to persist.
type SaveInput struct {
	Symptoms     []string
	Diagnosis    string
	Treatment    *string
	Medications  *string
	HomeRemedies *string
	FileAnalysis *string
}

// Save persists a consultation record for the given user.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, in SaveInput) (*Record, error) {
	symptoms := make([]string, 0, len(in.Symptoms))
	for _, sym := range in.Symptoms {
		if trimmed := strings.TrimSpace(sym); trimmed != "" {
			symptoms = append(symptoms, trimmed)
		}
	}
	if len(symptoms) == 0 {
		return nil, apperr.New(apperr.KindValidation, "at least one symptom is required")
	}
	if strings.TrimSpace(in.Diagnosis) == "" {
		return nil, apperr.New(apperr.KindValidation, "diagnosis is required")
	}

	rec := &Record{
		ID:           uuid.New(),
		UserID:       userID,
		Symptoms:     symptoms,
		Diagnosis:    strings.TrimSpace(in.Diagnosis),
		Treatment:    in.Treatment,
		Medications:  in.Medications,
		HomeRemedies: in.HomeRemedies,
		FileAnalysis: in.FileAnalysis,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ListRecent returns one page of the user's consultations, newest first,
// plus the total count for the pagination envelope. limit is clamped to the
// page cap; a user with no history gets an empty page, not an error.
func (s *Service) ListRecent(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	if limit <= 0 || limit > historyLimit {
		limit = historyLimit
	}
	if offset < 0 {
		offset = 0
	}

	records, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if records == nil {
		records = []*Record{}
	}

	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
