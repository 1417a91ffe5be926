package wizard

import (
	"strings"

	"bossboarding/internal/domain"
)

// StepID names a wizard step. Steps are explicit states, not array indices;
// the ordered transition table below is the only place order is defined.
type StepID string

const (
	StepBusinessInfo StepID = "business-info"
	StepLocation     StepID = "location"
	StepPhotos       StepID = "photos"
	StepMachines     StepID = "machines"
	StepEmployees    StepID = "employees"
	StepShipping     StepID = "shipping"
	StepKiosk        StepID = "kiosk"
	StepMerchant     StepID = "merchant-account"
	StepPCIConsent   StepID = "pci-consent"
	StepPayment      StepID = "payment"
	StepReview       StepID = "review-submit"
)

// Step couples a state with its display name and validity predicate. The
// predicate gates the Continue action in the client; the engine itself only
// manages position.
type Step struct {
	ID       StepID
	Name     string
	Complete func(c domain.Customer) bool
}

// Steps is the ordered transition table. Step N transitions forward to step
// N+1 and backward to step N-1; arbitrary jumps are bounded by the
// high-water mark in Engine.
var Steps = []Step{
	{StepBusinessInfo, "Business Info", func(c domain.Customer) bool {
		return filled(c.BusinessName) && filled(c.OwnerName) && filled(c.Email) && filled(c.Phone)
	}},
	{StepLocation, "Location", func(c domain.Customer) bool {
		return filled(c.Location.Address) && filled(c.Location.City) && filled(c.Location.State) && filled(c.Location.PostalCode)
	}},
	{StepPhotos, "Store Photos", func(c domain.Customer) bool {
		return len(c.Location.PhotoURLs) > 0
	}},
	{StepMachines, "Machines", func(c domain.Customer) bool {
		return len(c.Machines) > 0
	}},
	{StepEmployees, "Employees", func(c domain.Customer) bool {
		return len(c.Employees) > 0
	}},
	{StepShipping, "Shipping", func(c domain.Customer) bool {
		return filled(c.Shipping.ContactName) && filled(c.Shipping.Address) && filled(c.Shipping.City)
	}},
	{StepKiosk, "Kiosk Setup", func(c domain.Customer) bool {
		return c.Kiosk.KioskCount > 0
	}},
	{StepMerchant, "Merchant Account", func(c domain.Customer) bool {
		return filled(c.Merchant.LegalName) && filled(c.Merchant.TaxID)
	}},
	{StepPCIConsent, "PCI Consent", func(c domain.Customer) bool {
		return c.PCI.Consented
	}},
	{StepPayment, "Payment", func(c domain.Customer) bool {
		return filled(c.Billing.ContactName) && filled(c.Billing.Method)
	}},
	{StepReview, "Review & Submit", func(c domain.Customer) bool {
		return true
	}},
}

// TotalSteps is the length of the transition table.
func TotalSteps() int {
	return len(Steps)
}

// IndexOf returns the position of a step id, or -1.
func IndexOf(id StepID) int {
	for i, s := range Steps {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}
