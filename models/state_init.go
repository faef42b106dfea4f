package models

import "fmt"

// InitOutcome reports what a game state initialization found and did.
type InitOutcome int

const (
	// InitExisting means both records were already present, possibly created
	// by a concurrent initializer.
	InitExisting InitOutcome = iota
	// InitCreated means both records were created by this call.
	InitCreated
	// InitRepaired means exactly one record was missing and has been created.
	InitRepaired
)

func (o InitOutcome) String() string {
	switch o {
	case InitExisting:
		return "existing"
	case InitCreated:
		return "created"
	case InitRepaired:
		return "repaired"
	default:
		return fmt.Sprintf("InitOutcome(%d)", int(o))
	}
}
