package validator

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
)

// ValidationError is a single field failure reported back as 422 details.
type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// ToMap keys messages by field. A later message for the same field wins.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v))
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Ids are UUIDv7; accepts either case.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

// IsValidDate parses a YYYY-MM-DD calendar date into UTC midnight.
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := calendar.ParseDate(dateStr)
	return date, err == nil
}

func IsInSlice(value string, slice []string) bool {
	return slices.Contains(slice, value)
}

// Usernames: 2-20 of A-Z, a-z, 0-9, '.', '_', '-'
var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9._-]{2,20}$`)

func IsValidUsername(username string) bool {
	return usernameRegex.MatchString(username)
}
