package component

// Pickup is collected when the player touches it.
type Pickup struct {
	Name      string
	Radius    float64
	Heal      int
	Abilities []AbilityID
}

var PickupComponent = NewComponent[Pickup]()

// DropEntry rolls once on death.
type DropEntry struct {
	Chance float64
	Pickup Pickup
}

// DropTable lists what an actor may leave behind.
type DropTable struct {
	Entries []DropEntry
}

var DropTableComponent = NewComponent[DropTable]()
