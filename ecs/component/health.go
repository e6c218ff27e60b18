package component

// Health is kept within [0, Max]. Only the damage resolver and heal pickups
// mutate Current.
type Health struct {
	Current int
	Max     int
}

var HealthComponent = NewComponent[Health]()
