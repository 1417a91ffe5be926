// Package report produces the admin commission report in JSON, CSV and
// XLSX. Everything is recomputed from the customer list on each call.
package report

import (
	"context"
	"io"

	"bossboarding/internal/commission"
	customerrepo "bossboarding/internal/repository/customer"
)

// Service derives commission entries.
type Service struct {
	customers customerrepo.Repository
}

// New creates a Service.
func New(customers customerrepo.Repository) *Service {
	return &Service{customers: customers}
}

// Commissions computes filtered entries across all customers.
func (s *Service) Commissions(ctx context.Context, f commission.Filter) ([]commission.Entry, error) {
	customers, err := s.customers.List(ctx, customerrepo.Filter{})
	if err != nil {
		return nil, err
	}
	return commission.ComputeAll(customers, f), nil
}

// WriteCSV streams the filtered report as CSV.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, f commission.Filter) error {
	entries, err := s.Commissions(ctx, f)
	if err != nil {
		return err
	}
	return commission.WriteCSV(w, entries)
}

// WriteXLSX streams the filtered report as a spreadsheet.
func (s *Service) WriteXLSX(ctx context.Context, w io.Writer, f commission.Filter) error {
	entries, err := s.Commissions(ctx, f)
	if err != nil {
		return err
	}
	return commission.WriteXLSX(w, entries)
}
