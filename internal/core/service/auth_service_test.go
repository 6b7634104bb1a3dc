package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sirpyerre/wavegame-api/internal/core/domain"
	"github.com/sirpyerre/wavegame-api/internal/infrastructure/db/memory"
	"github.com/sirpyerre/wavegame-api/internal/infrastructure/security"
)

var discardLogger = zerolog.Nop()

// racyUserRepo hides existing users from the pre-check, forcing Register to
// rely on the insert-time constraint.
type racyUserRepo struct {
	*memory.Repository
}

func (r racyUserRepo) FindUserByEmailOrUsername(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

type failingUserRepo struct {
	*memory.Repository
	err error
}

func (r failingUserRepo) FindUserByEmail(context.Context, string) (*domain.User, error) {
	return nil, r.err
}

func fastHasher() *security.BcryptHasher { return security.NewBcryptHasher(bcrypt.MinCost) }

func jwtFor(secret string) *security.JWTManager { return security.NewJWTManager(secret, time.Hour) }

func newTestAuthService(t *testing.T) (*AuthService, *security.JWTManager) {
	t.Helper()
	tokens := jwtFor("secret")
	svc := NewAuthService(memory.NewRepository(), fastHasher(), tokens, discardLogger)
	return svc, tokens
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, tokens := newTestAuthService(t)

	res, err := svc.Register(context.Background(), "alice", "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.User.ID == "" {
		t.Fatalf("expected user id to be set")
	}
	if res.User.Username != "alice" || res.User.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	if res.User.CreatedAt.IsZero() {
		t.Fatalf("expected createdAt to be set")
	}

	userID, err := tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if userID != res.User.ID {
		t.Fatalf("token user mismatch: %s != %s", userID, res.User.ID)
	}
}

func TestAuthService_Register_StoresHash(t *testing.T) {
	repo := memory.NewRepository()
	svc := NewAuthService(repo, fastHasher(), jwtFor("s"), discardLogger)

	res, err := svc.Register(context.Background(), "bob", "b@x.com", "pass123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	stored, _ := repo.FindUserByID(context.Background(), res.User.ID)
	if stored.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "bob", "bob@x.com", "pass123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Register(ctx, "other", "bob@x.com", "pass123"); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if _, err := svc.Register(ctx, "bob", "new@x.com", "pass123"); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	// Both collide: the email wins.
	if _, err := svc.Register(ctx, "bob", "bob@x.com", "pass123"); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken when both collide, got %v", err)
	}
}

func TestAuthService_Register_ConstraintBeatsPreCheck(t *testing.T) {
	repo := memory.NewRepository()
	svc := NewAuthService(racyUserRepo{repo}, fastHasher(), jwtFor("s"), discardLogger)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "dup", "dup@x.com", "pass123"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, "dup2", "dup@x.com", "pass123")
	if !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected duplicate error from insert, got %v", err)
	}
}

func TestAuthService_Register_ConcurrentSameEmail(t *testing.T) {
	repo := memory.NewRepository()
	svc := NewAuthService(racyUserRepo{repo}, fastHasher(), jwtFor("s"), discardLogger)

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		dupes     int
	)
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			username := "racer" + string(rune('a'+i))
			_, err := svc.Register(context.Background(), username, "race@x.com", "pass123")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrDuplicate):
				dupes++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	if succeeded != 1 {
		t.Fatalf("expected exactly one registration to succeed, got %d", succeeded)
	}
	if dupes != attempts-1 {
		t.Fatalf("expected %d duplicate errors, got %d", attempts-1, dupes)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, tokens := newTestAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "carol", "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(ctx, "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if res.User.ID != reg.User.ID || res.User.Username != "carol" {
		t.Fatalf("unexpected user: %+v", res.User)
	}

	userID, err := tokens.Verify(res.Token)
	if err != nil || userID != reg.User.ID {
		t.Fatalf("token does not resolve to the user: %q %v", userID, err)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, _ = svc.Register(ctx, "dave", "dave@x.com", "goodpass")
	if _, err := svc.Login(ctx, "dave@x.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailLooksLikeBadPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Login(context.Background(), "ghost@x.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_RepositoryFailure(t *testing.T) {
	boom := errors.New("db unavailable")
	repo := failingUserRepo{Repository: memory.NewRepository(), err: boom}
	svc := NewAuthService(repo, fastHasher(), jwtFor("s"), discardLogger)

	_, err := svc.Login(context.Background(), "a@x.com", "pass")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("storage failure must not look like bad credentials")
	}
}
