package customer

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("customer: not found")

type Customer struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

func New(id, name, email string) (*Customer, error) {
	if id == "" {
		return nil, errors.New("customer: id is required")
	}
	if name == "" {
		return nil, errors.New("customer: name is required")
	}
	return &Customer{
		ID:        id,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}, nil
}
