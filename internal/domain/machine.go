package domain

import "time"

// MachineType partitions the machine-number space: washers take 1-99,
// dryers 101-199, everything else 201 and up.
type MachineType string

const (
	MachineWasher MachineType = "washer"
	MachineDryer  MachineType = "dryer"
	MachineOther  MachineType = "other"
)

// NumberRange returns the inclusive machine-number range reserved for t.
func (t MachineType) NumberRange() (int, int) {
	switch t {
	case MachineWasher:
		return 1, 99
	case MachineDryer:
		return 101, 199
	default:
		return 201, 299
	}
}

// Machine is one piece of laundry equipment at a customer's location.
// The full set is replaced on every save rather than diffed per row.
type Machine struct {
	ID            string             `json:"id,omitempty"`
	CustomerID    string             `json:"customerId,omitempty"`
	MachineNumber int                `json:"machineNumber"`
	Type          MachineType        `json:"type"`
	Make          string             `json:"make,omitempty"`
	Model         string             `json:"model,omitempty"`
	SerialNumber  string             `json:"serialNumber,omitempty"`
	CoinType      string             `json:"coinType,omitempty"`
	Pricing       map[string]float64 `json:"pricing,omitempty"`
	Status        string             `json:"status,omitempty"`
	CreatedAt     time.Time          `json:"createdAt,omitempty"`
}
