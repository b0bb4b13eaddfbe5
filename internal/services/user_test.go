package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"meetapp/internal/domain"
)

type fakeHasher struct {
	saltErr error
}

func (f *fakeHasher) GenerateSalt() (string, error) {
	if f.saltErr != nil {
		return "", f.saltErr
	}
	return "salt", nil
}

func (f *fakeHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}

func (f *fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeIssuer struct {
	err error
}

func (f *fakeIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + userID, nil
}

func TestUserService_SignUp(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		userName  string
		password  string
		createErr error
		wantErr   error
	}{
		{
			name:     "valid signup",
			email:    "sam@example.com",
			userName: "Sam",
			password: "secret1",
		},
		{
			name:     "email normalized to lowercase",
			email:    "  Sam@Example.COM ",
			userName: "Sam",
			password: "secret1",
		},
		{
			name:     "invalid email",
			email:    "not-an-email",
			userName: "Sam",
			password: "secret1",
			wantErr:  domain.ErrInvalidInput,
		},
		{
			name:     "blank name",
			email:    "sam@example.com",
			userName: "   ",
			password: "secret1",
			wantErr:  domain.ErrInvalidInput,
		},
		{
			name:     "short password",
			email:    "sam@example.com",
			userName: "Sam",
			password: "12345",
			wantErr:  domain.ErrInvalidInput,
		},
		{
			name:      "duplicate email",
			email:     "sam@example.com",
			userName:  "Sam",
			password:  "secret1",
			createErr: domain.ErrDuplicateEmail,
			wantErr:   domain.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepository{users: map[string]*domain.User{}, createErr: tt.createErr}
			svc := NewUserService(repo, &fakeHasher{}, &fakeIssuer{}, time.Hour, time.Second)

			user, err := svc.SignUp(context.Background(), tt.email, tt.userName, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SignUp() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SignUp() unexpected error: %v", err)
			}
			if user.Email != "sam@example.com" {
				t.Errorf("email = %q, want normalized %q", user.Email, "sam@example.com")
			}
			if user.PasswordSalt != "salt" || user.PasswordHash != "salt:"+tt.password {
				t.Errorf("credentials not derived from hasher: hash=%q salt=%q", user.PasswordHash, user.PasswordSalt)
			}
		})
	}
}

func TestUserService_Login(t *testing.T) {
	stored := &domain.User{
		ID:           "user-1",
		Email:        "sam@example.com",
		Name:         "Sam",
		PasswordHash: "salt:secret1",
		PasswordSalt: "salt",
	}

	tests := []struct {
		name     string
		email    string
		password string
		issuer   *fakeIssuer
		wantErr  error
	}{
		{
			name:     "valid credentials",
			email:    "sam@example.com",
			password: "secret1",
			issuer:   &fakeIssuer{},
		},
		{
			name:     "email case insensitive",
			email:    "SAM@example.com",
			password: "secret1",
			issuer:   &fakeIssuer{},
		},
		{
			name:     "wrong password",
			email:    "sam@example.com",
			password: "wrong",
			issuer:   &fakeIssuer{},
			wantErr:  domain.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "secret1",
			issuer:   &fakeIssuer{},
			wantErr:  domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepository{users: map[string]*domain.User{stored.ID: stored}}
			svc := NewUserService(repo, &fakeHasher{}, tt.issuer, time.Hour, time.Second)

			token, user, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() unexpected error: %v", err)
			}
			if token != "token-for-user-1" {
				t.Errorf("token = %q", token)
			}
			if user.ID != stored.ID {
				t.Errorf("user = %+v", user)
			}
		})
	}
}

func TestUserService_GetByID(t *testing.T) {
	stored := &domain.User{ID: "user-1", Email: "sam@example.com"}
	repo := &mockUserRepository{users: map[string]*domain.User{stored.ID: stored}}
	svc := NewUserService(repo, &fakeHasher{}, &fakeIssuer{}, time.Hour, time.Second)

	user, err := svc.GetByID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if user.Email != stored.Email {
		t.Errorf("user = %+v", user)
	}

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID() error = %v, want %v", err, domain.ErrNotFound)
	}
}

type deadlineRecordingUserRepo struct {
	mockUserRepository
	hadDeadline bool
}

func (r *deadlineRecordingUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	_, r.hadDeadline = ctx.Deadline()
	return r.mockUserRepository.GetByEmail(ctx, email)
}

func TestUserService_DerivesStorageTimeout(t *testing.T) {
	stored := &domain.User{
		ID:           "user-1",
		Email:        "sam@example.com",
		PasswordHash: "salt:secret1",
		PasswordSalt: "salt",
	}
	repo := &deadlineRecordingUserRepo{
		mockUserRepository: mockUserRepository{users: map[string]*domain.User{stored.ID: stored}},
	}
	svc := NewUserService(repo, &fakeHasher{}, &fakeIssuer{}, time.Hour, time.Second)

	if _, _, err := svc.Login(context.Background(), "sam@example.com", "secret1"); err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if !repo.hadDeadline {
		t.Fatal("repository saw a context without a deadline")
	}
}
