package identity

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickmed/quickmed/internal/platform/apperr"
)

// Service implements registration, login and token resolution. Tokens are
// HS256 signatures over the account email and do not expire; a token stays
// valid for as long as the account exists.
type Service struct {
	repo       Repository
	secret     []byte
	bcryptCost int
}

func NewService(repo Repository, secret string, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, secret: []byte(secret), bcryptCost: bcryptCost}
}

// RegisterInput carries the signup form. Demographics are optional and kept
// only for prompt personalization.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	DOB        *time.Time
	Gender     *string
	HeightCm   *float64
	WeightKg   *float64
	BloodGroup *string
	Allergies  []string
	Conditions []string
}

func (in *RegisterInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperr.New(apperr.KindValidation, "name is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return apperr.New(apperr.KindValidation, "a valid email is required")
	}
	if len(in.Password) < 6 {
		return apperr.New(apperr.KindValidation, "password must be at least 6 characters")
	}
	if in.Gender != nil {
		switch strings.ToLower(*in.Gender) {
		case "male", "female", "other":
		default:
			return apperr.New(apperr.KindValidation, "gender must be one of male, female, other")
		}
	}
	if in.HeightCm != nil && (*in.HeightCm <= 0 || *in.HeightCm > 300) {
		return apperr.New(apperr.KindValidation, "height must be a positive number of centimeters")
	}
	if in.WeightKg != nil && (*in.WeightKg <= 0 || *in.WeightKg > 700) {
		return apperr.New(apperr.KindValidation, "weight must be a positive number of kilograms")
	}
	return nil
}

// Register creates an account and issues its first token. The unique index on
// email is the authority on duplicates; the racing loser of two simultaneous
// signups gets a conflict from the insert, never a second account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, string, error) {
	if err := in.validate(); err != nil {
		return nil, "", err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         "user",
		DOB:          in.DOB,
		Gender:       in.Gender,
		HeightCm:     in.HeightCm,
		WeightKg:     in.WeightKg,
		BloodGroup:   in.BloodGroup,
		Allergies:    in.Allergies,
		Conditions:   in.Conditions,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller and both reject the request
// as bad input (400), matching the register/login form contract; only
// bearer-token failures are authentication errors. Neither surfaces as a
// server error.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", apperr.New(apperr.KindValidation, "email and password are required")
	}

	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, "", apperr.New(apperr.KindValidation, "invalid email or password")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.New(apperr.KindValidation, "invalid email or password")
	}

	token, err := s.issueToken(u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Resolve maps a bearer token back to its account. A valid signature over a
// deleted account yields not found, not an authentication failure.
func (s *Service) Resolve(ctx context.Context, tokenString string) (*User, error) {
	if tokenString == "" {
		return nil, apperr.New(apperr.KindAuthentication, "missing bearer token")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.New(apperr.KindAuthentication, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.New(apperr.KindAuthentication, "invalid token")
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, apperr.New(apperr.KindAuthentication, "invalid token")
	}

	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) issueToken(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": email})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
