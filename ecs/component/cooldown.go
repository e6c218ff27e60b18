package component

// CooldownLedger tracks the last time each action of one actor fired. Every
// attack, ability, contact hit and trap volley asks the ledger before firing.
type CooldownLedger struct {
	cooldown  map[string]float64
	lastFired map[string]float64
}

func NewCooldownLedger() *CooldownLedger {
	return &CooldownLedger{
		cooldown:  make(map[string]float64),
		lastFired: make(map[string]float64),
	}
}

// Register sets the cooldown of action. When firstReadyAt is greater than
// zero the action first becomes ready at that time, otherwise it is ready
// immediately. Re-registering keeps the recorded fire time.
func (l *CooldownLedger) Register(action string, cooldown, firstReadyAt float64) {
	if l == nil {
		return
	}
	l.ensure()
	if cooldown < 0 {
		cooldown = 0
	}
	l.cooldown[action] = cooldown
	if _, fired := l.lastFired[action]; fired {
		return
	}
	if firstReadyAt > 0 {
		l.lastFired[action] = firstReadyAt - cooldown
	}
}

// Reschedule makes action ready at the given time regardless of history.
func (l *CooldownLedger) Reschedule(action string, readyAt float64) {
	if l == nil {
		return
	}
	l.ensure()
	l.lastFired[action] = readyAt - l.cooldown[action]
}

// IsReady reports now - lastFiredAt >= cooldown. Actions never fired and
// never scheduled are ready.
func (l *CooldownLedger) IsReady(action string, now float64) bool {
	if l == nil {
		return true
	}
	last, ok := l.lastFired[action]
	if !ok {
		return true
	}
	return now-last >= l.cooldown[action]
}

// MarkFired records now as the last fire time of action.
func (l *CooldownLedger) MarkFired(action string, now float64) {
	if l == nil {
		return
	}
	l.ensure()
	l.lastFired[action] = now
}

// ForceReady rewinds the last fire time so the action is ready at now.
func (l *CooldownLedger) ForceReady(action string, now float64) {
	l.Reschedule(action, now)
}

// Remaining is the time left until action is ready, zero when ready.
func (l *CooldownLedger) Remaining(action string, now float64) float64 {
	if l == nil {
		return 0
	}
	last, ok := l.lastFired[action]
	if !ok {
		return 0
	}
	left := l.cooldown[action] - (now - last)
	if left < 0 {
		return 0
	}
	return left
}

func (l *CooldownLedger) Cooldown(action string) float64 {
	if l == nil {
		return 0
	}
	return l.cooldown[action]
}

func (l *CooldownLedger) LastFired(action string) (float64, bool) {
	if l == nil {
		return 0, false
	}
	t, ok := l.lastFired[action]
	return t, ok
}

func (l *CooldownLedger) ensure() {
	if l.cooldown == nil {
		l.cooldown = make(map[string]float64)
	}
	if l.lastFired == nil {
		l.lastFired = make(map[string]float64)
	}
}

var CooldownLedgerComponent = NewComponent[CooldownLedger]()
