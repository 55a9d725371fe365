package consultation

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/quickmed/quickmed/internal/platform/apperr"
)

type mockRepo struct {
	mu         sync.Mutex
	records    []*Record
	knownUsers map[uuid.UUID]bool
}

func newMockRepo(users ...uuid.UUID) *mockRepo {
	known := make(map[uuid.UUID]bool, len(users))
	for _, u := range users {
		known[u] = true
	}
	return &mockRepo{knownUsers: known}
}

func (m *mockRepo) Create(ctx context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.knownUsers[rec.UserID] {
		return apperr.New(apperr.KindNotFound, "user not found")
	}
	cp := *rec
	m.records = append(m.records, &cp)
	return nil
}

func (m *mockRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Record
	for _, rec := range m.records {
		if rec.UserID == userID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, rec := range m.records {
		if rec.UserID == userID {
			total++
		}
	}
	return total, nil
}

func TestSave(t *testing.T) {
	userID := uuid.New()
	svc := NewService(newMockRepo(userID))

	treatment := "rest and hydration"
	rec, err := svc.Save(context.Background(), userID, SaveInput{
		Symptoms:  []string{"headache", " fever "},
		Diagnosis: "Viral infection | likely influenza",
		Treatment: &treatment,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Error("expected a generated record id")
	}
	if len(rec.Symptoms) != 2 || rec.Symptoms[1] != "fever" {
		t.Errorf("expected trimmed symptoms, got %v", rec.Symptoms)
	}
}

func TestSave_Validation(t *testing.T) {
	userID := uuid.New()
	svc := NewService(newMockRepo(userID))

	cases := []struct {
		name string
		in   SaveInput
	}{
		{"no symptoms", SaveInput{Diagnosis: "something"}},
		{"blank symptoms", SaveInput{Symptoms: []string{" ", ""}, Diagnosis: "something"}},
		{"no diagnosis", SaveInput{Symptoms: []string{"headache"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Save(context.Background(), userID, tc.in)
			if !apperr.IsKind(err, apperr.KindValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestSave_UnknownUserIsNotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Save(context.Background(), uuid.New(), SaveInput{
		Symptoms:  []string{"headache"},
		Diagnosis: "something",
	})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not found for unknown user, got %v", err)
	}
}

func TestListRecent(t *testing.T) {
	userID := uuid.New()
	other := uuid.New()
	svc := NewService(newMockRepo(userID, other))

	for i := 0; i < 12; i++ {
		if _, err := svc.Save(context.Background(), userID, SaveInput{
			Symptoms:  []string{"headache"},
			Diagnosis: "round",
		}); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	if _, err := svc.Save(context.Background(), other, SaveInput{
		Symptoms:  []string{"cough"},
		Diagnosis: "other user",
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	records, total, err := svc.ListRecent(context.Background(), userID, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 10 {
		t.Errorf("expected history page capped at 10, got %d", len(records))
	}
	if total != 12 {
		t.Errorf("expected total 12, got %d", total)
	}
	for _, rec := range records {
		if rec.UserID != userID {
			t.Error("history leaked another user's record")
		}
	}

	// An oversized limit is clamped to the cap, a smaller one is honored.
	records, _, err = svc.ListRecent(context.Background(), userID, 50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 10 {
		t.Errorf("expected oversized limit clamped to 10, got %d", len(records))
	}
	records, _, err = svc.ListRecent(context.Background(), userID, 3, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}

	// Offset pages past the first records.
	records, _, err = svc.ListRecent(context.Background(), userID, 10, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records on the second page, got %d", len(records))
	}
}

func TestListRecent_EmptyHistory(t *testing.T) {
	userID := uuid.New()
	svc := NewService(newMockRepo(userID))

	records, total, err := svc.ListRecent(context.Background(), userID, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("expected empty slice, got %v", records)
	}
	if total != 0 {
		t.Errorf("expected total 0, got %d", total)
	}
}
