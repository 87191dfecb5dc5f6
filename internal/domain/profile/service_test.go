package profile

import (
	"context"
	"errors"
	"testing"
)

type fakeRepo struct {
	items map[string]MasterProfile
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]MasterProfile{}}
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID string) (*MasterProfile, error) {
	p, ok := f.items[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return &p, nil
}

func (f *fakeRepo) Upsert(_ context.Context, p *MasterProfile) error {
	f.items[p.UserID] = *p
	return nil
}

func (f *fakeRepo) EnsureExists(_ context.Context, p *MasterProfile) error {
	if _, ok := f.items[p.UserID]; ok {
		return nil
	}
	f.items[p.UserID] = *p
	return nil
}

func TestServiceSave(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	saved, err := svc.Save(ctx, SaveInput{
		UserID:    "user-1",
		Name:      "  Hanako  ",
		Bio:       "dog person",
		Birthdate: "1990-04-01",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Name != "Hanako" {
		t.Fatalf("name = %q, want trimmed", saved.Name)
	}
	if saved.Bio == nil || *saved.Bio != "dog person" {
		t.Fatalf("bio = %v", saved.Bio)
	}

	// Saving again overwrites; the blanked bio becomes NULL.
	saved, err = svc.Save(ctx, SaveInput{UserID: "user-1", Name: "Hanako"})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if saved.Bio != nil {
		t.Fatalf("bio = %q, want nil", *saved.Bio)
	}
}

func TestServiceSaveValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	cases := []struct {
		name  string
		input SaveInput
	}{
		{"missing user id", SaveInput{Name: "Hanako"}},
		{"blank name", SaveInput{UserID: "user-1", Name: "   "}},
		{"bad birthdate", SaveInput{UserID: "user-1", Name: "Hanako", Birthdate: "01/04/1990"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Save(ctx, tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestServiceGet(t *testing.T) {
	repo := newFakeRepo()
	repo.items["user-1"] = MasterProfile{UserID: "user-1", Name: "Hanako"}
	svc := NewService(repo)
	ctx := context.Background()

	p, err := svc.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name != "Hanako" {
		t.Fatalf("name = %q", p.Name)
	}

	if _, err := svc.Get(ctx, "user-2"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("got %v, want ErrProfileNotFound", err)
	}
	if _, err := svc.Get(ctx, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestServiceUpsertProfile(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.UpsertProfile(ctx, "user-1", "hanako@example.com", ""); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	p := repo.items["user-1"]
	if p.Email == nil || *p.Email != "hanako@example.com" {
		t.Fatalf("email = %v", p.Email)
	}

	// An edited profile must not be clobbered by the login hook.
	if _, err := svc.Save(ctx, SaveInput{UserID: "user-1", Name: "Hanako"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.UpsertProfile(ctx, "user-1", "other@example.com", ""); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if repo.items["user-1"].Name != "Hanako" {
		t.Fatal("login hook overwrote the edited profile")
	}
}
