package component

// HazardZone damages hostile actors standing inside it once per tick interval
// after a fade-in. Each damage tick is its own hit registry activation.
type HazardZone struct {
	Owner    uint64
	Faction  Faction
	Def      ZoneDef
	Elapsed  float64
	NextTick float64
}

var HazardZoneComponent = NewComponent[HazardZone]()

// GroundBurst is a telegraphed explosion that goes off once after its delay.
type GroundBurst struct {
	Owner      uint64
	Faction    Faction
	Def        BurstDef
	Elapsed    float64
	Exploded   bool
	Activation uint64
}

var GroundBurstComponent = NewComponent[GroundBurst]()
