package store

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validEmail is deliberately permissive: empty values pass, values without an
// "@" pass, and only values shaped like an address are held to local@domain.tld.
func validEmail(email string) bool {
	if email == "" {
		return true
	}
	if strings.Contains(email, "@") {
		return emailRe.MatchString(email)
	}
	return true
}

// validPhone accepts any value. Kept as an explicit step so the pipeline
// stays symmetric with the email check; tightening it is a product decision.
func validPhone(string) bool {
	return true
}

// isZero reports whether a field value counts as absent for required-field
// checks: nil, empty string, false and numeric zero all fail the presence test.
func isZero(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case int:
		return x == 0
	case int32:
		return x == 0
	case int64:
		return x == 0
	case float32:
		return x == 0
	case float64:
		return x == 0
	default:
		return false
	}
}

// validate runs the full pipeline and collects every violated rule; it never
// stops at the first failure. Required-field presence is only enforced at
// creation, updates are partial.
func (s *Store) validate(data Record, isUpdate bool) []string {
	var errs []string

	if !isUpdate {
		for _, field := range s.schema.RequiredFields {
			if isZero(data[field]) {
				errs = append(errs, fmt.Sprintf("le champ '%s' est requis", field))
			}
		}
	}

	if v, present := data["email"]; present {
		if str, _ := v.(string); !validEmail(str) {
			errs = append(errs, "format d'email invalide")
		}
	}

	if v, present := data["phone"]; present {
		if str, _ := v.(string); !validPhone(str) {
			errs = append(errs, "format de téléphone invalide")
		}
	}

	if s.schema.Validate != nil {
		errs = append(errs, s.schema.Validate(data)...)
	}

	return errs
}
