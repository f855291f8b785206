package user

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ServiceInterface is implemented by Service and by test doubles in other
// packages.
type ServiceInterface interface {
	GetByID(id int) (User, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

// Register creates a local-auth user with a bcrypt-hashed password.
func (s *Service) Register(u User) (User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if _, err := s.repo.GetByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u.Password = string(hashed)

	u.AuthProvider = ProviderLocal
	if u.Role == "" {
		u.Role = RoleUser
	}
	now := time.Now().UTC().Format(time.RFC3339)
	u.CreatedAt = now
	u.UpdatedAt = now
	return s.repo.Create(u)
}

// Authenticate verifies a local login. Google-provisioned accounts carry no
// password hash, so they always fail the local path.
func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if u.Password == "" {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

// GoogleSignIn upserts a user from a Google identity payload: an existing
// account with the same email is linked to the provider, otherwise a fresh
// google-auth account is created.
func (s *Service) GoogleSignIn(name, email, googleUID, photoURL string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	now := time.Now().UTC().Format(time.RFC3339)

	existing, err := s.repo.GetByEmail(email)
	if err == nil {
		existing.AuthProvider = ProviderGoogle
		existing.GoogleUID = googleUID
		if photoURL != "" {
			existing.ProfileImage = photoURL
		}
		existing.UpdatedAt = now
		return s.repo.Update(existing.ID, existing)
	}
	if err != ErrNotFound {
		return User{}, err
	}

	return s.repo.Create(User{
		Name:         name,
		Email:        email,
		AuthProvider: ProviderGoogle,
		GoogleUID:    googleUID,
		Role:         RoleUser,
		ProfileImage: photoURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
