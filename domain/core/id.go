package core

import (
	"github.com/google/uuid"
)

// RunID identifies a single screening run
type RunID string

// NewRunID generates a fresh run identifier
func NewRunID() RunID {
	return RunID(uuid.New().String())
}

func (id RunID) String() string {
	return string(id)
}

// ParseRunID validates a string as a run identifier
func ParseRunID(s string) (RunID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return RunID(u.String()), nil
}
