package domain

import "fmt"

// AssignMachineNumbers enforces the numbering convention at write time:
// washers 1-99, dryers 101-199, other 201+. Machines with number 0 get the
// next free number in their type's range; explicit numbers must fall inside
// the range and be unique. The input order is preserved.
func AssignMachineNumbers(machines []Machine) ([]Machine, error) {
	used := make(map[int]struct{})
	for _, m := range machines {
		if m.MachineNumber == 0 {
			continue
		}
		lo, hi := m.Type.NumberRange()
		if m.MachineNumber < lo || m.MachineNumber > hi {
			return nil, fmt.Errorf("machine number %d out of range %d-%d for type %s", m.MachineNumber, lo, hi, m.Type)
		}
		if _, dup := used[m.MachineNumber]; dup {
			return nil, fmt.Errorf("duplicate machine number %d", m.MachineNumber)
		}
		used[m.MachineNumber] = struct{}{}
	}

	out := make([]Machine, len(machines))
	copy(out, machines)
	for i := range out {
		if out[i].MachineNumber != 0 {
			continue
		}
		n, err := nextFree(used, out[i].Type)
		if err != nil {
			return nil, err
		}
		out[i].MachineNumber = n
		used[n] = struct{}{}
	}
	return out, nil
}

// NextMachineNumber returns the lowest free number in the type's range given
// the existing pool. Never reuses an occupied number.
func NextMachineNumber(existing []Machine, t MachineType) (int, error) {
	used := make(map[int]struct{}, len(existing))
	for _, m := range existing {
		used[m.MachineNumber] = struct{}{}
	}
	return nextFree(used, t)
}

func nextFree(used map[int]struct{}, t MachineType) (int, error) {
	lo, hi := t.NumberRange()
	for n := lo; n <= hi; n++ {
		if _, taken := used[n]; !taken {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: type %s", ErrRangeExhausted, t)
}
