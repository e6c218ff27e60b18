package component

// Turret is a stationary attacker without health, such as an arrow trap. When
// LinkedBoss is set the turret shuts down once that boss dies.
type Turret struct {
	DetectionRange float64
	LinkedBoss     uint64
	Active         bool

	FireInterval   float64
	// BurstDelay separates the shots of one volley.
	BurstDelay float64
	Pattern    Pattern
	Projectile ProjectileDef

	// Pending holds the directions of the volley still to be fired.
	Pending    [][2]float64
	NextShotAt float64
}

var TurretComponent = NewComponent[Turret]()
