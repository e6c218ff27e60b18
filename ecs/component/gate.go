package component

// ExitGate is the portal that only opens once the encounter is cleared.
type ExitGate struct {
	Radius float64
	Open   bool
}

var ExitGateComponent = NewComponent[ExitGate]()

// EncounterRoster is the singleton list of enemies that must die before the
// gate opens.
type EncounterRoster struct {
	Enemies []uint64
	Cleared bool
}

var EncounterRosterComponent = NewComponent[EncounterRoster]()
