package address

import (
	"errors"
	"time"
)

var ErrInvalidAddress = errors.New("recipient, line1, city and postalCode are required")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(userID int) ([]Address, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListByUser(userID)
}

func (s *Service) Get(userID, addressID int) (Address, error) {
	if userID <= 0 || addressID <= 0 {
		return Address{}, ErrNotFound
	}
	return s.repo.GetByID(userID, addressID)
}

func (s *Service) Create(userID int, a Address) (Address, error) {
	if userID <= 0 {
		return Address{}, ErrNotFound
	}
	if err := validate(a); err != nil {
		return Address{}, err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	a.UserID = userID
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.repo.Create(a)
}

func (s *Service) Update(userID, addressID int, a Address) (Address, error) {
	if userID <= 0 || addressID <= 0 {
		return Address{}, ErrNotFound
	}
	if err := validate(a); err != nil {
		return Address{}, err
	}
	a.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(userID, addressID, a)
}

// Oneline resolves an address and renders it as a single shipping line.
func (s *Service) Oneline(userID, addressID int) (string, error) {
	a, err := s.Get(userID, addressID)
	if err != nil {
		return "", err
	}
	return a.Oneline(), nil
}

func (s *Service) Delete(userID, addressID int) error {
	if userID <= 0 || addressID <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(userID, addressID)
}

func validate(a Address) error {
	if a.Recipient == "" || a.Line1 == "" || a.City == "" || a.PostalCode == "" {
		return ErrInvalidAddress
	}
	return nil
}
