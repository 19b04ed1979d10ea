package planning

import (
	"errors"
	"fmt"

	"github.com/finplan/backend/internal/domain/collection"
	"github.com/finplan/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

func nonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return shared.NewValidationError(field, "must not be negative")
	}
	return nil
}

func maxCount(field string, n, limit int) error {
	if n > limit {
		return shared.NewValidationError(field, fmt.Sprintf("must contain at most %d entries", limit))
	}
	return nil
}

func validateAging(aging collection.AgingSnapshot) error {
	return errors.Join(
		nonNegative("aging.days_0_30", aging.Days0To30),
		nonNegative("aging.days_31_60", aging.Days31To60),
		nonNegative("aging.days_61_90", aging.Days61To90),
		nonNegative("aging.days_90_plus", aging.Days90Plus),
	)
}

// prefixed rewrites the field of each validation error to sit under prefix,
// e.g. "strategies[2].bad_debt_rate_pct"
func prefixed(prefix string, err error) error {
	if err == nil {
		return nil
	}

	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}

	out := make([]error, 0, len(errs))
	for _, e := range errs {
		var de *shared.DomainError
		if errors.As(e, &de) {
			copied := *de
			copied.Field = prefix + "." + de.Field
			out = append(out, &copied)
			continue
		}
		out = append(out, e)
	}
	return errors.Join(out...)
}
