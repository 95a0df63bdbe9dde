package service

import (
	internal_errors "github.com/borda-dev/borda/internal/errors"

	"github.com/borda-dev/borda/internal/domain"
	"github.com/borda-dev/borda/internal/logger"
	"github.com/borda-dev/borda/internal/utils/color"
	"github.com/borda-dev/borda/internal/utils/googleauth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(username, password string) (domain.User, string, error)
	Signup(creds SignupCredentials) (domain.User, string, error)
	GoogleLogin(idToken string) (domain.User, string, error)
}

type SignupCredentials struct {
	Username string
	Password string
	FullName string
	ImgUrl   string
}

type AuthStorage interface {
	SaveUser(user domain.User) error
	UserByUsername(username string) (domain.User, error)
	UserByEmail(email string) (domain.User, error)
}

type Jwt interface {
	NewToken(user domain.MiniUser) (string, error)
}

type Auth struct {
	storage AuthStorage
	jwt     Jwt
	google  googleauth.Verifier
}

func NewAuth(storage AuthStorage, jwt Jwt, google googleauth.Verifier) *Auth {
	return &Auth{storage: storage, jwt: jwt, google: google}
}

// Login verifies the password hash before issuing a token. Unknown user
// and wrong password are indistinguishable to the caller.
func (a *Auth) Login(username, password string) (domain.User, string, error) {
	logger.Log.Debug("login attempt", "username", username)

	user, err := a.storage.UserByUsername(username)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return domain.User{}, "", internal_errors.Unauthorized("Invalid username or password")
		}
		return domain.User{}, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		return domain.User{}, "", internal_errors.Unauthorized("Invalid username or password")
	}

	return a.issueToken(user)
}

func (a *Auth) Signup(creds SignupCredentials) (domain.User, string, error) {
	if creds.Username == "" || creds.Password == "" || creds.FullName == "" {
		return domain.User{}, "", internal_errors.Validation("Missing required signup information")
	}

	if _, err := a.storage.UserByUsername(creds.Username); err == nil {
		return domain.User{}, "", internal_errors.Conflict("Username already taken")
	} else if !internal_errors.IsNotFound(err) {
		return domain.User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, "", err
	}

	user := domain.User{
		Id:       uuid.NewString(),
		Username: creds.Username,
		PassHash: string(hash),
		FullName: creds.FullName,
		ImgUrl:   creds.ImgUrl,
		Score:    100,
	}
	user.Color = color.ForUser(user.Id)

	// The unique constraint still backstops concurrent signups.
	if err := a.storage.SaveUser(user); err != nil {
		return domain.User{}, "", err
	}

	return a.issueToken(user)
}

// GoogleLogin verifies the ID token, then looks up or creates a local
// user keyed by email.
func (a *Auth) GoogleLogin(idToken string) (domain.User, string, error) {
	if a.google == nil {
		return domain.User{}, "", internal_errors.BadRequest("Google login is not configured")
	}

	identity, err := a.google.Verify(idToken)
	if err != nil {
		return domain.User{}, "", err
	}

	user, err := a.storage.UserByEmail(identity.Email)
	if err == nil {
		return a.issueToken(user)
	}
	if !internal_errors.IsNotFound(err) {
		return domain.User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(identity.Sub), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, "", err
	}
	user = domain.User{
		Id:       uuid.NewString(),
		Username: identity.Email,
		PassHash: string(hash),
		FullName: identity.Name,
		ImgUrl:   identity.Picture,
		Email:    identity.Email,
		Score:    100,
	}
	user.Color = color.ForUser(user.Id)
	if err := a.storage.SaveUser(user); err != nil {
		return domain.User{}, "", err
	}

	return a.issueToken(user)
}

func (a *Auth) issueToken(user domain.User) (domain.User, string, error) {
	token, err := a.jwt.NewToken(user.Mini())
	if err != nil {
		return domain.User{}, "", err
	}
	user.PassHash = ""
	return user, token, nil
}
