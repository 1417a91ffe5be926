// Package commission computes sales-rep commission entries. Entries are
// derived reporting only: nothing here is persisted, everything is
// recomputed from the customer list on each request.
package commission

import (
	"math"
	"strings"
	"time"

	"bossboarding/internal/domain"
)

// PaymentStatus buckets a deal by how much of it has been paid.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// Entry is one customer x rep-assignment commission line.
type Entry struct {
	CustomerID   string  `json:"customerId"`
	BusinessName string  `json:"businessName"`
	RepID        string  `json:"repId"`
	RepName      string  `json:"repName"`
	DealAmount   float64 `json:"dealAmount"`
	Rate         float64 `json:"commissionRate"`
	SplitPercent float64 `json:"splitPercent"`
	PaidToDate   float64 `json:"paidToDateAmount"`

	TotalCommission     float64 `json:"totalCommission"`
	RepCommission       float64 `json:"repCommission"`
	CommissionOnPaid    float64 `json:"commissionOnPaid"`
	RepCommissionOnPaid float64 `json:"repCommissionOnPaid"`
	CommissionPaid      float64 `json:"commissionPaid"`
	CommissionOwedNow   float64 `json:"commissionOwedNow"`
	MonthlyCommission   float64 `json:"monthlyCommission"`

	PaymentStatus PaymentStatus `json:"paymentStatus"`
	DealDate      time.Time     `json:"dealDate"`
}

// Filter narrows the computed entry set.
type Filter struct {
	RepID         string
	PaymentStatus PaymentStatus
	From          time.Time
	To            time.Time
}

// Compute derives entries for one customer, one per rep assignment. Deals
// without a positive amount produce nothing.
func Compute(c domain.Customer) []Entry {
	if c.DealAmount <= 0 {
		return nil
	}
	entries := make([]Entry, 0, len(c.SalesRepAssignments))
	for _, a := range c.SalesRepAssignments {
		total := c.DealAmount * c.CommissionRate / 100
		rep := total * a.SplitPercent / 100
		onPaid := c.PaidToDateAmount * c.CommissionRate / 100
		repOnPaid := onPaid * a.SplitPercent / 100
		owed := math.Max(0, repOnPaid-a.CommissionPaid)

		monthly := 0.0
		if c.PaymentTermMonths > 0 {
			monthly = (c.DealAmount - c.PaidToDateAmount) / float64(c.PaymentTermMonths) *
				c.CommissionRate / 100 * a.SplitPercent / 100
		}

		entries = append(entries, Entry{
			CustomerID:          c.ID,
			BusinessName:        c.BusinessName,
			RepID:               a.RepID,
			RepName:             a.RepName,
			DealAmount:          c.DealAmount,
			Rate:                c.CommissionRate,
			SplitPercent:        a.SplitPercent,
			PaidToDate:          c.PaidToDateAmount,
			TotalCommission:     total,
			RepCommission:       rep,
			CommissionOnPaid:    onPaid,
			RepCommissionOnPaid: repOnPaid,
			CommissionPaid:      a.CommissionPaid,
			CommissionOwedNow:   owed,
			MonthlyCommission:   monthly,
			PaymentStatus:       paymentStatus(c),
			DealDate:            c.CreatedAt,
		})
	}
	return entries
}

// ComputeAll derives and filters entries across the customer list.
func ComputeAll(customers []domain.Customer, f Filter) []Entry {
	var out []Entry
	for _, c := range customers {
		for _, e := range Compute(c) {
			if !f.matches(e) {
				continue
			}
			out = append(out, e)
		}
	}
	return out
}

func (f Filter) matches(e Entry) bool {
	if f.RepID != "" && !strings.EqualFold(f.RepID, e.RepID) {
		return false
	}
	if f.PaymentStatus != "" && f.PaymentStatus != e.PaymentStatus {
		return false
	}
	if !f.From.IsZero() && e.DealDate.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.DealDate.After(f.To) {
		return false
	}
	return true
}

func paymentStatus(c domain.Customer) PaymentStatus {
	switch {
	case c.PaidToDateAmount >= c.DealAmount:
		return PaymentPaid
	case c.PaidToDateAmount > 0:
		return PaymentPartial
	default:
		return PaymentUnpaid
	}
}
