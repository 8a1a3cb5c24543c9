// Package parser turns raw claim queries such as
// "45 female, cataract surgery, Mumbai, 2 years" into domain.ParsedQuery values.
package parser

import (
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/domain"
)

const minSegments = 4

// Parse splits raw on commas. The first segment carries age and gender,
// the next three procedure, location and policy duration. Extra segments are ignored.
func Parse(raw string) (domain.ParsedQuery, error) {
	parts := strings.Split(raw, ",")
	if len(parts) < minSegments {
		return domain.ParsedQuery{}, &domain.FormatError{
			Cause: "query must contain at least four parts separated by commas",
		}
	}

	ageGender := strings.Fields(parts[0])
	if len(ageGender) < 2 {
		return domain.ParsedQuery{}, &domain.FormatError{
			Cause: "age and gender are not correctly formatted",
		}
	}

	age, err := strconv.Atoi(ageGender[0])
	if err != nil {
		return domain.ParsedQuery{}, &domain.FormatError{
			Cause: "age must be a number",
			Err:   err,
		}
	}

	q := domain.ParsedQuery{
		Age:            age,
		Gender:         ageGender[1],
		Procedure:      strings.TrimSpace(parts[1]),
		Location:       strings.TrimSpace(parts[2]),
		PolicyDuration: strings.TrimSpace(parts[3]),
	}

	switch {
	case q.Procedure == "":
		return domain.ParsedQuery{}, &domain.FormatError{Cause: "procedure is empty"}
	case q.Location == "":
		return domain.ParsedQuery{}, &domain.FormatError{Cause: "location is empty"}
	case q.PolicyDuration == "":
		return domain.ParsedQuery{}, &domain.FormatError{Cause: "policy duration is empty"}
	}

	return q, nil
}
