// Package collection models how a proposed collection policy reshapes an
// accounts receivable aging snapshot, and what that policy costs.
package collection

import (
	"github.com/finplan/backend/internal/domain/shared/money"
	"github.com/shopspring/decimal"
)

// Bucket identifies an aging range
type Bucket string

const (
	Bucket0To30  Bucket = "0-30"
	Bucket31To60 Bucket = "31-60"
	Bucket61To90 Bucket = "61-90"
	Bucket90Plus Bucket = "90+"
)

// Assumed days to collect an invoice sitting in each bucket
const (
	DaysToCollect0To30  = 15
	DaysToCollect31To60 = 45
	DaysToCollect61To90 = 75
	DaysToCollect90Plus = 120
)

// String returns the string representation of the bucket
func (b Bucket) String() string {
	return string(b)
}

// DaysToCollect returns the weighting used for DSO, zero for unknown buckets
func (b Bucket) DaysToCollect() decimal.Decimal {
	switch b {
	case Bucket0To30:
		return decimal.NewFromInt(DaysToCollect0To30)
	case Bucket31To60:
		return decimal.NewFromInt(DaysToCollect31To60)
	case Bucket61To90:
		return decimal.NewFromInt(DaysToCollect61To90)
	case Bucket90Plus:
		return decimal.NewFromInt(DaysToCollect90Plus)
	default:
		return decimal.Zero
	}
}

// AgingSnapshot holds receivables grouped by days outstanding.
// The total is always derived from the four buckets.
type AgingSnapshot struct {
	Days0To30  decimal.Decimal `json:"days_0_30"`
	Days31To60 decimal.Decimal `json:"days_31_60"`
	Days61To90 decimal.Decimal `json:"days_61_90"`
	Days90Plus decimal.Decimal `json:"days_90_plus"`
}

// BucketAmount is one bucket's balance and its share of the total
type BucketAmount struct {
	Bucket  Bucket          `json:"bucket"`
	Amount  decimal.Decimal `json:"amount"`
	Percent decimal.Decimal `json:"percent"`
}

// Total returns the sum of the four buckets
func (a AgingSnapshot) Total() decimal.Decimal {
	return money.Sum(a.Days0To30, a.Days31To60, a.Days61To90, a.Days90Plus)
}

// Buckets returns the balances ordered from youngest to oldest
func (a AgingSnapshot) Buckets() []BucketAmount {
	total := a.Total()
	amounts := []struct {
		bucket Bucket
		amount decimal.Decimal
	}{
		{Bucket0To30, a.Days0To30},
		{Bucket31To60, a.Days31To60},
		{Bucket61To90, a.Days61To90},
		{Bucket90Plus, a.Days90Plus},
	}

	buckets := make([]BucketAmount, len(amounts))
	for i, b := range amounts {
		buckets[i] = BucketAmount{
			Bucket:  b.bucket,
			Amount:  b.amount,
			Percent: money.Percentage(b.amount, total),
		}
	}
	return buckets
}

// Distribution returns each bucket's percentage of total AR keyed by bucket
func (a AgingSnapshot) Distribution() map[Bucket]decimal.Decimal {
	dist := make(map[Bucket]decimal.Decimal, 4)
	for _, b := range a.Buckets() {
		dist[b.Bucket] = b.Percent
	}
	return dist
}

// WeightedDSO returns the days-weighted average collection time, zero when AR is zero
func (a AgingSnapshot) WeightedDSO() decimal.Decimal {
	weighted := decimal.Zero
	for _, b := range a.Buckets() {
		weighted = weighted.Add(b.Amount.Mul(b.Bucket.DaysToCollect()))
	}
	return money.SafeDiv(weighted, a.Total())
}

// CollectionRate returns the share of AR under 60 days as a percentage
func (a AgingSnapshot) CollectionRate() decimal.Decimal {
	return money.Percentage(a.Days0To30.Add(a.Days31To60), a.Total())
}
