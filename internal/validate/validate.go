package validate

import (
	"fmt"
	"regexp"

	"cybershield/internal/domain"
)

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
	urlRe   = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)
	ipRe    = regexp.MustCompile(`^(?:[0-9]{1,3}\.){3}[0-9]{1,3}$`)
)

// Target checks value against the format rule for its type. Violations
// yield a domain.ValidationError and must be surfaced before any
// provider is invoked.
func Target(t domain.TargetType, value string) error {
	switch t {
	case domain.TargetEmail:
		if !emailRe.MatchString(value) {
			return &domain.ValidationError{Msg: "invalid email format"}
		}
	case domain.TargetURL:
		if !urlRe.MatchString(value) {
			return &domain.ValidationError{Msg: "invalid URL format"}
		}
	case domain.TargetIP:
		if !ipRe.MatchString(value) {
			return &domain.ValidationError{Msg: "invalid IP format"}
		}
	default:
		return &domain.ValidationError{Msg: fmt.Sprintf("unknown target type %q", t)}
	}
	return nil
}
