package component

// AlertGroup links actors that wake up together. Any member spotting or being
// hit by the target alerts every member of the same Name.
type AlertGroup struct {
	Name    string
	Range   float64
	Alerted bool
}

var AlertGroupComponent = NewComponent[AlertGroup]()
