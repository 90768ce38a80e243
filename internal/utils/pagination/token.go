package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// Cursor identifies the last row of a page in transaction history order
// (date desc, created_at desc, id desc).
type Cursor struct {
	Date      time.Time
	CreatedAt time.Time
	ID        string
}

// EncodeToken creates a base64 encoded token from the cursor of the last row on a page.
func EncodeToken(c Cursor) string {
	return EncodeMultiFieldToken(c.Date.Format(timeFormat), c.CreatedAt.Format(timeFormat), c.ID)
}

// DecodeToken parses the base64 encoded token back into a cursor.
func DecodeToken(token string) (Cursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return Cursor{}, err
	}
	if len(parts) != 3 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split): expected 3 fields, got %d", len(parts))
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	if parts[2] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (empty id)")
	}
	return Cursor{Date: date, CreatedAt: createdAt, ID: parts[2]}, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}

// ClampLimit bounds a requested page size to [1, max], using def for non-positive values.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
