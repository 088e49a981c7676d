package service

import "github.com/google/uuid"

type TokenIssuer interface {
	IssueToken(userID uuid.UUID) (string, error)
}
