package catalog

import (
	"math"

	"github.com/baharkarakas/fameflow-backend/internal/errs"
	"github.com/baharkarakas/fameflow-backend/internal/models"
	"github.com/shopspring/decimal"
)

// Price charges quantity units of service at the catalog rate. Tier and
// custom quantities are priced the same way. Bounds are the caller's job.
func Price(service models.OrderType, quantity int64) (decimal.Decimal, error) {
	r, err := Rate(service)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(quantity).Mul(r), nil
}

var maxQuantity = decimal.NewFromInt(math.MaxInt64)

// QuantityFor is the largest quantity a budget buys: floor(budget / rate).
func QuantityFor(service models.OrderType, budget decimal.Decimal) (int64, error) {
	r, err := Rate(service)
	if err != nil {
		return 0, err
	}
	q, rem := budget.QuoRem(r, 0)
	if rem.IsNegative() {
		q = q.Sub(decimal.NewFromInt(1))
	}
	if q.GreaterThan(maxQuantity) {
		return 0, errs.Invalid("budget %s is out of range", budget.String())
	}
	return q.IntPart(), nil
}
