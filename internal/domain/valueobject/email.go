package valueobject

import (
	"regexp"
	"strings"

	"github.com/zagroshq/cmms-api/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// Email is a validated, lowercase-normalized email address.
type Email struct {
	value string
}

// NewEmail validates the input and returns a normalized Email.
func NewEmail(value string) (Email, error) {
	v := strings.TrimSpace(value)
	if !emailPattern.MatchString(v) {
		return Email{}, domain.NewValidationError("invalid email address: %s", value)
	}
	return Email{value: strings.ToLower(v)}, nil
}

// RestoreEmail wraps an already-normalized value from storage.
func RestoreEmail(value string) Email { return Email{value: value} }

func (e Email) String() string { return e.value }

func (e Email) Equals(other Email) bool { return e.value == other.value }

func (e Email) IsZero() bool { return e.value == "" }
