package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeUsersRepo struct {
	users  map[uint]*User
	nextID uint
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: make(map[uint]*User), nextID: 1}
}

func (r *fakeUsersRepo) GetByID(_ context.Context, id uint) (*User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUsersRepo) List(_ context.Context) ([]User, error) {
	items := make([]User, 0, len(r.users))
	for _, user := range r.users {
		items = append(items, *user)
	}
	return items, nil
}

func (r *fakeUsersRepo) Create(_ context.Context, user *User) error {
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUsersRepo) Update(_ context.Context, user *User) error {
	if _, ok := r.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUsersRepo) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func (r *fakeUsersRepo) CountByEmail(_ context.Context, email string, excludeID uint) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.Email == email && user.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo, "test-secret", time.Hour)
	return svc.WithNow(func() time.Time {
		return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	})
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := newTestService(repo)

	session, err := svc.Register(context.Background(), RegisterInput{
		Username: "tresorier",
		Email:    "Tresorier@Fonds.org",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected a token on register")
	}
	if session.User.Email != "tresorier@fonds.org" {
		t.Fatalf("expected normalized email, got %q", session.User.Email)
	}
	if session.User.PasswordHash == "secret123" {
		t.Fatal("password stored in plaintext")
	}

	logged, err := svc.Login(context.Background(), LoginInput{
		Email:    "tresorier@fonds.org",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	userID, err := svc.VerifyToken(logged.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if userID != session.User.ID {
		t.Fatalf("expected user id %d from token, got %d", session.User.ID, userID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := newTestService(repo)

	input := RegisterInput{Username: "a", Email: "a@fonds.org", Password: "pw"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), input)
	if !errors.Is(err, ErrEmailDejaUtilise) {
		t.Fatalf("expected ErrEmailDejaUtilise, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Username: "a", Email: "a@fonds.org", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	cases := []LoginInput{
		{Email: "a@fonds.org", Password: "wrong"},
		{Email: "missing@fonds.org", Password: "pw"},
		{Email: "", Password: ""},
	}
	for _, input := range cases {
		if _, err := svc.Login(context.Background(), input); !errors.Is(err, ErrIdentifiantsInvalides) {
			t.Fatalf("login(%q): expected ErrIdentifiantsInvalides, got %v", input.Email, err)
		}
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(newFakeUsersRepo())
	if _, err := svc.VerifyToken("not-a-token"); !errors.Is(err, ErrIdentifiantsInvalides) {
		t.Fatalf("expected ErrIdentifiantsInvalides, got %v", err)
	}
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := newTestService(repo)

	first, err := svc.Register(context.Background(), RegisterInput{Username: "a", Email: "a@fonds.org", Password: "pw"})
	if err != nil {
		t.Fatalf("register a: %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{Username: "b", Email: "b@fonds.org", Password: "pw"}); err != nil {
		t.Fatalf("register b: %v", err)
	}

	_, err = svc.UpdateUser(context.Background(), UpdateUserInput{ID: first.User.ID, Username: "a", Email: "b@fonds.org"})
	if !errors.Is(err, ErrEmailDejaUtilise) {
		t.Fatalf("expected ErrEmailDejaUtilise, got %v", err)
	}
}

func TestDeleteUserNotFound(t *testing.T) {
	svc := newTestService(newFakeUsersRepo())
	if err := svc.DeleteUser(context.Background(), 42); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
