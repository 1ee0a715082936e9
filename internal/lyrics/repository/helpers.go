package repository

import (
	"database/sql"

	"github.com/google/uuid"
)

// uuidPtrToString converts an optional UUID to its MySQL column value.
func uuidPtrToString(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

// parseNullUUID parses an optional CHAR(36) column into a *uuid.UUID.
func parseNullUUID(value sql.NullString) (*uuid.UUID, error) {
	if !value.Valid {
		return nil, nil
	}
	id, err := uuid.Parse(value.String)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
