package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"myzone/internal/cache"
	"myzone/internal/config"
	"myzone/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user with this username already exists")
	ErrInvalidToken       = errors.New("invalid token")
)

type Service struct {
	cache  *cache.Cache
	Config *config.Config
}

type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

func NewService(c *cache.Cache, cfg *config.Config) *Service {
	return &Service{
		cache:  c,
		Config: cfg,
	}
}

func (s *Service) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (s *Service) CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (s *Service) GenerateToken(userID uint) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour * 30)), // 30 days
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.Config.JWTSecret))
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(s.Config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *Service) GetUserByID(id uint) (*models.User, error) {
	user, ok := s.cache.GetUserByID(id)
	if !ok {
		return nil, errors.Errorf("user %d not found", id)
	}
	return &user, nil
}

func (s *Service) GetUserByUsername(username string) (*models.User, error) {
	user, ok := s.cache.GetUserByUsername(username)
	if !ok {
		return nil, errors.Errorf("user %q not found", username)
	}
	return &user, nil
}

func (s *Service) Register(username, password string) (*models.User, error) {
	if _, ok := s.cache.GetUserByUsername(username); ok {
		return nil, ErrUserExists
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hashedPassword,
	}

	if err := s.cache.CreateUser(user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	return user, nil
}

func (s *Service) Login(username, password string) (*models.User, string, error) {
	user, ok := s.cache.GetUserByUsername(username)
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	if !s.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to sign token")
	}

	return &user, token, nil
}

// SetTimezone stores the selected timezone of user. An empty id clears it.
func (s *Service) SetTimezone(user *models.User, id string) error {
	user.SetTimezone(id)
	return s.cache.UpdateUser(user)
}
