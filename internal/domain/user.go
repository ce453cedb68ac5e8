package domain

import "time"

// User is a marketplace participant. The same user can lend and borrow.
type User struct {
	ID         string    `json:"id" db:"id"`
	Email      string    `json:"email" db:"email"`
	FullName   string    `json:"full_name" db:"full_name"`
	DocumentID string    `json:"document_id" db:"document_id"` // CPF/CNPJ
	Phone      string    `json:"phone" db:"phone"`
	Points     int64     `json:"points" db:"points"`
	Level      int       `json:"level" db:"level"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=3"`
}

type UpdateProfileRequest struct {
	FullName   string `json:"full_name" validate:"required,min=3"`
	DocumentID string `json:"document_id" validate:"omitempty,min=11,max=18"`
	Phone      string `json:"phone" validate:"omitempty,min=10,max=20"`
}
