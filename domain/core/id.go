package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	WorkbookID ID
	TableID    ID
)

func (id WorkbookID) String() string { return ID(id).String() }
func (id TableID) String() string    { return ID(id).String() }

// ParseWorkbookID parses a string into WorkbookID
func ParseWorkbookID(s string) (WorkbookID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("workbook ID cannot be empty")
	}
	return WorkbookID(s), nil
}

// ParseTableID parses a string into TableID
func ParseTableID(s string) (TableID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("table ID cannot be empty")
	}
	return TableID(s), nil
}
