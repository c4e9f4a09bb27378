// Package validate holds the domain format checks shared by the entity
// schemas: French company identifiers, postal codes and enumerations.
package validate

import "regexp"

var (
	siretRe      = regexp.MustCompile(`^[0-9]{14}$`)
	tvaRe        = regexp.MustCompile(`^[A-Z]{2}[0-9A-Z]+$`)
	codePostalRe = regexp.MustCompile(`^[0-9]{5}$`)
)

// Siret checks the 14-digit SIRET registration number. Empty passes; presence
// is the schema's concern.
func Siret(v string) bool {
	if v == "" {
		return true
	}
	return siretRe.MatchString(v)
}

// TVA checks the EU VAT number shape: two uppercase letters then alphanumerics.
func TVA(v string) bool {
	if v == "" {
		return true
	}
	return tvaRe.MatchString(v)
}

// CodePostal checks the 5-digit French postal code.
func CodePostal(v string) bool {
	if v == "" {
		return true
	}
	return codePostalRe.MatchString(v)
}

// TailleEntreprise checks the company-size enumeration.
func TailleEntreprise(v string) bool {
	switch v {
	case "TPE", "PME", "ETI", "GE":
		return true
	}
	return false
}

// CapaciteTransport checks a positive numeric transport capacity. JSON
// numbers arrive as float64.
func CapaciteTransport(v interface{}) bool {
	switch x := v.(type) {
	case float64:
		return x > 0
	case int:
		return x > 0
	case int64:
		return x > 0
	default:
		return false
	}
}
