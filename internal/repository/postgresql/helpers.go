package postgresql

import (
	"fmt"

	"github.com/google/uuid"
)

// newID returns a time-ordered identifier for a new row.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}
