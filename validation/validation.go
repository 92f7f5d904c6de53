// Package validation collects field-level input checks into a Violations
// map keyed by field name. Callers run the validators they need and consult
// Empty before writing anything.
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Error renders the violations as a stable, sorted summary so Violations
// can travel as an error value.
func (v Violations) Error() string {
	if len(v) == 0 {
		return "no violations"
	}
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+"="+v[field])
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, ", "))
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func Email(field, value string, v Violations) {
	if !emailPattern.MatchString(value) {
		v[field] = "invalid_email"
	}
}

func MaxLen(field, value string, limit int, v Violations) {
	if len(value) > limit {
		v[field] = "too_long"
	}
}

func ValidID(field string, id uuid.UUID, v Violations) {
	if id == uuid.Nil {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}
