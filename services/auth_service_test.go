package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"milestone-api/logger"
	"milestone-api/models"
	"milestone-api/repositories"
)

type memUsers struct {
	mu    sync.Mutex
	users []models.User
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return repositories.ErrDuplicate
		}
	}
	m.users = append(m.users, *u)
	return nil
}

func (m *memUsers) find(match func(models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.ID == id })
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.Email == email })
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.Username == username })
}

type welcomeRecorder struct {
	sent chan string
}

func (w *welcomeRecorder) SendWelcomeEmail(to, _ string) error {
	w.sent <- to
	return nil
}

func newTestAuth(users *memUsers, mailer WelcomeMailer) *AuthService {
	svc := NewAuthService(users, NewTokenManager("test-secret", time.Hour), mailer, logger.Discard())
	svc.hashCost = bcrypt.MinCost
	return svc
}

func validSignup() SignupInput {
	return SignupInput{
		Email:    "Ravi@Fleet.in",
		Username: "ravi",
		UserType: "Owner",
		Password: "Secret123",
	}
}

func TestSignupCreatesHashedUser(t *testing.T) {
	users := &memUsers{}
	mailer := &welcomeRecorder{sent: make(chan string, 1)}
	svc := newTestAuth(users, mailer)

	user, err := svc.Signup(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if user.Email != "ravi@fleet.in" || user.UserType != models.UserTypeAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.Password == "Secret123" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Secret123")) != nil {
		t.Fatal("password must be stored as a bcrypt hash")
	}

	select {
	case to := <-mailer.sent:
		if to != "ravi@fleet.in" {
			t.Fatalf("welcome email sent to %q", to)
		}
	case <-time.After(time.Second):
		t.Fatal("welcome email not sent")
	}
}

func TestSignupRejectsDuplicates(t *testing.T) {
	users := &memUsers{}
	svc := newTestAuth(users, nil)
	if _, err := svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("first signup: %v", err)
	}

	dupEmail := validSignup()
	dupEmail.Username = "other"
	if _, err := svc.Signup(context.Background(), dupEmail); KindOf(err) != KindConflict {
		t.Fatalf("duplicate email: %v", err)
	}

	dupName := validSignup()
	dupName.Email = "other@fleet.in"
	_, err := svc.Signup(context.Background(), dupName)
	if KindOf(err) != KindConflict || !strings.Contains(err.Error(), "username") {
		t.Fatalf("duplicate username: %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	svc := newTestAuth(&memUsers{}, nil)

	mutate := map[string]func(*SignupInput){
		"missing password": func(in *SignupInput) { in.Password = "" },
		"bad email":        func(in *SignupInput) { in.Email = "nope" },
		"short username":   func(in *SignupInput) { in.Username = "ab" },
		"weak password":    func(in *SignupInput) { in.Password = "password" },
		"bad user type":    func(in *SignupInput) { in.UserType = "passenger" },
	}
	for name, fn := range mutate {
		t.Run(name, func(t *testing.T) {
			in := validSignup()
			fn(&in)
			if _, err := svc.Signup(context.Background(), in); KindOf(err) != KindInvalidArgument {
				t.Fatalf("expected invalid argument, got %v", err)
			}
		})
	}
}

func TestSigninIssuesVerifiableToken(t *testing.T) {
	users := &memUsers{}
	svc := newTestAuth(users, nil)
	created, err := svc.Signup(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	token, user, err := svc.Signin(context.Background(), "RAVI@fleet.in", "Secret123")
	if err != nil {
		t.Fatalf("Signin: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("signed in as %s, want %s", user.ID, created.ID)
	}

	claims, err := svc.tokens.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID() != created.ID || claims.UserType != models.UserTypeAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, err := svc.Signin(context.Background(), "ravi@fleet.in", "wrong"); KindOf(err) != KindUnauthorized {
		t.Fatalf("wrong password: %v", err)
	}
	if _, _, err := svc.Signin(context.Background(), "ghost@fleet.in", "Secret123"); KindOf(err) != KindUnauthorized {
		t.Fatalf("unknown email: %v", err)
	}
}

func TestProfile(t *testing.T) {
	users := &memUsers{}
	svc := newTestAuth(users, nil)
	created, _ := svc.Signup(context.Background(), validSignup())

	profile, err := svc.Profile(context.Background(), created.ID)
	if err != nil || profile.Username != "ravi" {
		t.Fatalf("Profile: %+v, %v", profile, err)
	}
	if _, err := svc.Profile(context.Background(), "missing"); KindOf(err) != KindNotFound {
		t.Fatalf("missing user: %v", err)
	}
}

func TestTokenManagerRejectsBadTokens(t *testing.T) {
	tm := NewTokenManager("secret-a", time.Hour)
	user := &models.User{ID: "user-1", Email: "a@b.co", UserType: models.UserTypeDriver}

	token, err := tm.Generate(user)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	other := NewTokenManager("secret-b", time.Hour)
	if _, err := other.Parse(token); KindOf(err) != KindUnauthorized {
		t.Fatalf("wrong secret: %v", err)
	}

	expired := NewTokenManager("secret-a", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := expired.Parse(token); KindOf(err) != KindUnauthorized || !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expired token: %v", err)
	}

	if _, err := tm.Parse(""); KindOf(err) != KindUnauthorized {
		t.Fatalf("empty token: %v", err)
	}
	if _, err := tm.Parse("not.a.jwt"); KindOf(err) != KindUnauthorized {
		t.Fatalf("garbage token: %v", err)
	}
}
