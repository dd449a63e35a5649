package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Thimira-N/todo-cabin/internal/model"
	"github.com/Thimira-N/todo-cabin/internal/store"
)

var (
	ErrTeamNameTaken      = errors.New("team name already exists")
	ErrTeamNameInvalid    = errors.New("team name must be 2-50 characters")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid team name or password")
)

type AuthService struct {
	store store.Store
}

func NewAuthService(st store.Store) *AuthService { return &AuthService{store: st} }

// Register creates a team account. Team names are unique ignoring case;
// the duplicate check runs before the write.
func (s *AuthService) Register(ctx context.Context, teamName, password string) (*model.User, error) {
	teamName = strings.TrimSpace(teamName)
	if n := utf8.RuneCountInString(teamName); n < 2 || n > 50 {
		return nil, ErrTeamNameInvalid
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	existing, err := s.findByTeamName(ctx, teamName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrTeamNameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := model.User{
		ID:        uuid.NewString(),
		TeamName:  teamName,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Set(ctx, store.Users, u.ID, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

// Login checks the credentials and returns the team account. An unknown
// team and a wrong password are deliberately indistinguishable.
func (s *AuthService) Login(ctx context.Context, teamName, password string) (*model.User, error) {
	u, err := s.findByTeamName(ctx, strings.TrimSpace(teamName))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// CurrentUser loads the account behind an established session.
func (s *AuthService) CurrentUser(ctx context.Context, id string) (*model.User, error) {
	raw, err := s.store.Get(ctx, store.Users, id)
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}

func (s *AuthService) findByTeamName(ctx context.Context, teamName string) (*model.User, error) {
	docs, err := s.store.GetAll(ctx, store.Users)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for _, raw := range docs {
		var u model.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		if strings.EqualFold(u.TeamName, teamName) {
			return &u, nil
		}
	}
	return nil, nil
}
