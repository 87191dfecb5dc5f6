package pets

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"bokumono-go/pkg/logger"
)

type fakeRepo struct {
	items     []Pet
	listCalls int
	updateErr error
	deleteErr error
}

func (f *fakeRepo) ListByUser(_ context.Context, userID string, filter ListFilter) ([]Pet, error) {
	f.listCalls++
	var out []Pet
	for _, item := range f.items {
		if item.UserID != userID {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, userID, petID string) (*Pet, error) {
	for i := range f.items {
		if f.items[i].UserID == userID && f.items[i].ID == petID {
			found := f.items[i]
			return &found, nil
		}
	}
	return nil, ErrPetNotFound
}

func (f *fakeRepo) Create(_ context.Context, pet *Pet) error {
	f.items = append(f.items, *pet)
	return nil
}

func (f *fakeRepo) Update(_ context.Context, pet *Pet) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.items {
		if f.items[i].UserID == pet.UserID && f.items[i].ID == pet.ID {
			f.items[i] = *pet
			return nil
		}
	}
	return ErrPetNotFound
}

func (f *fakeRepo) Delete(_ context.Context, userID, petID string) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	for i := range f.items {
		if f.items[i].UserID == userID && f.items[i].ID == petID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeScheduleDeleter struct {
	deleted map[string]int
	err     error
}

func (f *fakeScheduleDeleter) DeleteByPet(_ context.Context, _, petID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.deleted == nil {
		f.deleted = map[string]int{}
	}
	count := 2
	f.deleted[petID] = count
	return count, nil
}

type countingCache struct {
	entries map[string][]Pet
	drops   int
}

func (c *countingCache) GetByUserID(userID string) ([]Pet, bool) {
	pets, ok := c.entries[userID]
	return pets, ok
}

func (c *countingCache) SetByUserID(userID string, pets []Pet, _ time.Duration) {
	if c.entries == nil {
		c.entries = map[string][]Pet{}
	}
	c.entries[userID] = pets
}

func (c *countingCache) DeleteByUserID(userID string) {
	c.drops++
	delete(c.entries, userID)
}

func testLogger() logger.Logger {
	return logger.New(io.Discard, slog.LevelError, "text")
}

func newTestService(repo *fakeRepo, deleter *fakeScheduleDeleter) *Service {
	svc := NewService(repo, deleter, testLogger())
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func strptr(s string) *string { return &s }

func TestServiceCreate(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeScheduleDeleter{})
	ctx := context.Background()

	pet, err := svc.Create(ctx, CreateInput{
		UserID:             "user-1",
		Name:               "  Pochi  ",
		Birthdate:          strptr("2020-06-15"),
		PerceivedMasterAge: 30,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if pet.ID == "" {
		t.Fatal("expected a generated id")
	}
	if pet.Name != "Pochi" {
		t.Fatalf("name = %q, want trimmed", pet.Name)
	}
	if pet.Status != StatusActive {
		t.Fatalf("status = %q, want active", pet.Status)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeScheduleDeleter{})
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateInput
	}{
		{"blank name", CreateInput{UserID: "user-1", Name: "  ", PerceivedMasterAge: 30}},
		{"zero perceived age", CreateInput{UserID: "user-1", Name: "Pochi", PerceivedMasterAge: 0}},
		{"negative perceived age", CreateInput{UserID: "user-1", Name: "Pochi", PerceivedMasterAge: -5}},
		{"bad birthdate", CreateInput{UserID: "user-1", Name: "Pochi", Birthdate: strptr("15/06/2020"), PerceivedMasterAge: 30}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestServiceCreateBlankBirthdateStoredAsNull(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeScheduleDeleter{})

	pet, err := svc.Create(context.Background(), CreateInput{
		UserID:             "user-1",
		Name:               "Pochi",
		Birthdate:          strptr("   "),
		PerceivedMasterAge: 30,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if pet.Birthdate != nil {
		t.Fatalf("birthdate = %q, want nil", *pet.Birthdate)
	}
}

func TestServiceUpdate(t *testing.T) {
	repo := &fakeRepo{items: []Pet{
		{ID: "pet-1", UserID: "user-1", Name: "Pochi", Status: StatusActive, PerceivedMasterAge: 30},
	}}
	svc := newTestService(repo, &fakeScheduleDeleter{})
	ctx := context.Background()

	archived := StatusArchived
	updated, err := svc.Update(ctx, UpdateInput{
		ID:     "pet-1",
		UserID: "user-1",
		Status: &archived,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != StatusArchived {
		t.Fatalf("status = %q, want archived", updated.Status)
	}
	if updated.Name != "Pochi" {
		t.Fatalf("omitted field changed: name = %q", updated.Name)
	}

	// Clearing the birthdate is an explicit null, distinct from not sending it.
	updated, err = svc.Update(ctx, UpdateInput{
		ID:        "pet-1",
		UserID:    "user-1",
		Birthdate: &BirthdatePatch{Value: nil},
	})
	if err != nil {
		t.Fatalf("clear birthdate: %v", err)
	}
	if updated.Birthdate != nil {
		t.Fatal("birthdate must be cleared")
	}

	if _, err := svc.Update(ctx, UpdateInput{ID: "pet-1", UserID: "user-1"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty patch: got %v, want ErrInvalidInput", err)
	}

	bogus := Status("retired")
	if _, err := svc.Update(ctx, UpdateInput{ID: "pet-1", UserID: "user-1", Status: &bogus}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bogus status: got %v, want ErrInvalidInput", err)
	}
}

func TestServiceListStatusFilter(t *testing.T) {
	repo := &fakeRepo{items: []Pet{
		{ID: "pet-1", UserID: "user-1", Name: "Pochi", Status: StatusActive},
		{ID: "pet-2", UserID: "user-1", Name: "Tama", Status: StatusArchived},
	}}
	svc := newTestService(repo, &fakeScheduleDeleter{})
	ctx := context.Background()

	all, err := svc.List(ctx, "user-1", ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}

	active, err := svc.List(ctx, "user-1", ListFilter{Status: StatusActive})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != "pet-1" {
		t.Fatalf("active = %+v", active)
	}
}

func TestServiceListUsesCache(t *testing.T) {
	repo := &fakeRepo{items: []Pet{
		{ID: "pet-1", UserID: "user-1", Name: "Pochi", Status: StatusActive},
	}}
	svc := newTestService(repo, &fakeScheduleDeleter{})
	cache := &countingCache{}
	svc.SetCache(cache, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.List(ctx, "user-1", ListFilter{}); err != nil {
			t.Fatalf("list %d: %v", i, err)
		}
	}
	if repo.listCalls != 1 {
		t.Fatalf("repo hit %d times, want 1", repo.listCalls)
	}

	// A mutation drops the entry; the next list goes back to storage.
	if _, err := svc.Create(ctx, CreateInput{UserID: "user-1", Name: "Tama", PerceivedMasterAge: 30}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.List(ctx, "user-1", ListFilter{}); err != nil {
		t.Fatalf("list after create: %v", err)
	}
	if repo.listCalls != 2 {
		t.Fatalf("repo hit %d times after invalidation, want 2", repo.listCalls)
	}
}

func TestServiceDeleteCascades(t *testing.T) {
	repo := &fakeRepo{items: []Pet{
		{ID: "pet-1", UserID: "user-1", Name: "Pochi", Status: StatusActive},
	}}
	deleter := &fakeScheduleDeleter{}
	svc := newTestService(repo, deleter)
	ctx := context.Background()

	if err := svc.Delete(ctx, "user-1", "pet-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleter.deleted["pet-1"] == 0 {
		t.Fatal("schedules were not cascaded")
	}
	if len(repo.items) != 0 {
		t.Fatal("pet still present after delete")
	}

	if err := svc.Delete(ctx, "user-1", "pet-1"); !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("second delete: got %v, want ErrPetNotFound", err)
	}
}

func TestServiceDeleteStopsOnCascadeFailure(t *testing.T) {
	repo := &fakeRepo{items: []Pet{
		{ID: "pet-1", UserID: "user-1", Name: "Pochi", Status: StatusActive},
	}}
	deleter := &fakeScheduleDeleter{err: errors.New("boom")}
	svc := newTestService(repo, deleter)

	err := svc.Delete(context.Background(), "user-1", "pet-1")
	if err == nil {
		t.Fatal("expected cascade failure to surface")
	}
	if len(repo.items) != 1 {
		t.Fatal("pet must survive when the cascade fails")
	}
}

func TestServiceAge(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeScheduleDeleter{})

	pet := &Pet{ID: "pet-1", Birthdate: strptr("2020-06-15")}
	if age := svc.Age(pet); age == nil || *age != 4 {
		t.Fatalf("age = %v, want 4", age)
	}

	if age := svc.Age(&Pet{ID: "pet-2"}); age != nil {
		t.Fatalf("missing birthdate: age = %d, want nil", *age)
	}
	if age := svc.Age(&Pet{ID: "pet-3", Birthdate: strptr("soon")}); age != nil {
		t.Fatalf("unreadable birthdate: age = %d, want nil", *age)
	}
	if age := svc.Age(nil); age != nil {
		t.Fatal("nil pet: want nil age")
	}
}
