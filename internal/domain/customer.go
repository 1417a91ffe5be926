package domain

import "time"

// Status is a customer's onboarding lifecycle status.
type Status string

const (
	StatusNotStarted  Status = "not_started"
	StatusInProgress  Status = "in_progress"
	StatusNeedsReview Status = "needs_review"
	StatusComplete    Status = "complete"
)

// TaskStatus is the state of a single catalog task for one customer.
type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not_started"
	TaskInProgress TaskStatus = "in_progress"
	TaskComplete   TaskStatus = "complete"
)

// TaskMeta records who last touched a task and when.
type TaskMeta struct {
	UpdatedBy string    `json:"updatedBy"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LocationInfo describes the store location collected in the wizard.
type LocationInfo struct {
	StoreName  string   `json:"storeName,omitempty"`
	Address    string   `json:"address,omitempty"`
	City       string   `json:"city,omitempty"`
	State      string   `json:"state,omitempty"`
	PostalCode string   `json:"postalCode,omitempty"`
	SquareFeet int      `json:"squareFeet,omitempty"`
	PhotoURLs  []string `json:"photoUrls,omitempty"`
}

// ShippingInfo holds the delivery address and contact for equipment shipping.
type ShippingInfo struct {
	ContactName  string `json:"contactName,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// KioskInfo holds the self-service kiosk configuration.
type KioskInfo struct {
	KioskCount     int    `json:"kioskCount,omitempty"`
	Language       string `json:"language,omitempty"`
	AcceptsCash    bool   `json:"acceptsCash"`
	AcceptsCard    bool   `json:"acceptsCard"`
	LoyaltyEnabled bool   `json:"loyaltyEnabled"`
}

// PCIInfo records the PCI compliance consent captured in the wizard.
type PCIInfo struct {
	Consented   bool      `json:"consented"`
	ConsentedBy string    `json:"consentedBy,omitempty"`
	ConsentedAt time.Time `json:"consentedAt,omitempty"`
}

// MerchantInfo holds the merchant account application details.
type MerchantInfo struct {
	LegalName      string `json:"legalName,omitempty"`
	TaxID          string `json:"taxId,omitempty"`
	BankName       string `json:"bankName,omitempty"`
	RoutingNumber  string `json:"routingNumber,omitempty"`
	AccountNumber  string `json:"accountNumber,omitempty"`
	ApplicationRef string `json:"applicationRef,omitempty"`
	Approved       bool   `json:"approved"`
}

// BillingInfo holds the billing contact and method chosen at the payment step.
type BillingInfo struct {
	ContactName string `json:"contactName,omitempty"`
	Email       string `json:"email,omitempty"`
	Method      string `json:"method,omitempty"`
	PONumber    string `json:"poNumber,omitempty"`
}

// PaymentLink is a hosted payment URL shared with the customer.
type PaymentLink struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SalesRepAssignment ties a sales rep to a customer's deal with a commission
// split. CommissionPaid is the amount already paid out to this rep.
type SalesRepAssignment struct {
	RepID          string    `json:"repId"`
	RepName        string    `json:"repName"`
	SplitPercent   float64   `json:"splitPercent"`
	CommissionPaid float64   `json:"commissionPaid"`
	AssignedAt     time.Time `json:"assignedAt,omitempty"`
}

// Customer is the root onboarding aggregate.
type Customer struct {
	ID           string `json:"id"`
	BusinessName string `json:"businessName"`
	OwnerName    string `json:"ownerName,omitempty"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`

	Status              Status `json:"status"`
	CurrentStep         int    `json:"currentStep"`
	HighestStepReached  int    `json:"highestStepReached"`
	TotalSteps          int    `json:"totalSteps"`
	OnboardingCompleted bool   `json:"onboardingCompleted"`
	CurrentStageID      string `json:"currentStageId,omitempty"`

	TaskStatuses map[string]TaskStatus `json:"taskStatuses,omitempty"`
	TaskMetadata map[string]TaskMeta   `json:"taskMetadata,omitempty"`

	Location LocationInfo `json:"location"`
	Shipping ShippingInfo `json:"shipping"`
	Kiosk    KioskInfo    `json:"kiosk"`
	PCI      PCIInfo      `json:"pci"`
	Merchant MerchantInfo `json:"merchant"`
	Billing  BillingInfo  `json:"billing"`

	Machines  []Machine  `json:"machines,omitempty"`
	Employees []Employee `json:"employees,omitempty"`

	PaymentLinks        []PaymentLink        `json:"paymentLinks,omitempty"`
	SalesRepAssignments []SalesRepAssignment `json:"salesRepAssignments,omitempty"`

	DealAmount        float64 `json:"dealAmount"`
	CommissionRate    float64 `json:"commissionRate"`
	PaymentTermMonths int     `json:"paymentTermMonths"`
	PaidToDateAmount  float64 `json:"paidToDateAmount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
