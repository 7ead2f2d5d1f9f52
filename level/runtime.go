package level

import (
	"math"

	"github.com/lixenwraith/echomaze/culling"
	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
)

// PingVerdict is the outcome of a ping request
type PingVerdict uint8

const (
	PingAllowed PingVerdict = iota
	// PingDepleted: no recharge charges left
	PingDepleted
	// PingLimitReached: the level's ping budget is spent
	PingLimitReached
)

// Recharge is the ping charge pool, one charge returns per cooldown of inactivity
type Recharge struct {
	Charges     int
	Max         int
	Cooldown    float64
	accumulated float64
	lastUpdate  float64
	// notified is set once the depleted cue played and cleared when a charge returns
	notified bool
}

// NewRecharge returns a full pool
func NewRecharge() Recharge {
	return Recharge{
		Charges:  parameter.PingChargesMax,
		Max:      parameter.PingChargesMax,
		Cooldown: parameter.PingChargeCooldown.Seconds(),
	}
}

// Update accrues time up to now and restores charges
func (r *Recharge) Update(now float64) {
	prev := r.Charges
	r.accumulated += math.Max(0, now-r.lastUpdate)
	r.lastUpdate = now
	for r.Cooldown > 0 && r.accumulated >= r.Cooldown && r.Charges < r.Max {
		r.Charges++
		r.accumulated -= r.Cooldown
	}
	if prev == 0 && r.Charges > 0 {
		r.notified = false
	}
}

func (r *Recharge) spend(now float64) {
	r.Charges = max(0, r.Charges-1)
	r.accumulated = 0
	r.lastUpdate = now
}

// Runtime is the mutable progress through one built level
type Runtime struct {
	Level        *Level
	KeyCollected bool
	Activated    []bool
	PingsUsed    int
	Recharge     Recharge
	TimerExpired bool

	lastChime      float64
	lastKnock      float64
	blockedCuePlay bool
}

// NewRuntime starts fresh progress on lvl
func NewRuntime(lvl *Level) *Runtime {
	return &Runtime{
		Level:     lvl,
		Activated: make([]bool, len(lvl.Beacons)),
		Recharge:  NewRecharge(),
		lastChime: math.Inf(-1),
		lastKnock: math.Inf(-1),
	}
}

func (r *Runtime) cellSize() float64 {
	return r.Level.Geometry.CellSize
}

// TryPing spends a charge and counts the ping when allowed
// The second result reports whether the depleted cue should play, at most once per depletion
func (r *Runtime) TryPing(now float64) (PingVerdict, bool) {
	if r.Recharge.Charges <= 0 {
		first := !r.Recharge.notified
		r.Recharge.notified = true
		return PingDepleted, first
	}
	if limit := r.Level.Spec.PingLimit; limit > 0 && r.PingsUsed >= limit {
		return PingLimitReached, false
	}
	r.Recharge.spend(now)
	r.PingsUsed++
	return PingAllowed, false
}

// PingsLeft returns the remaining ping budget, -1 when unlimited
func (r *Runtime) PingsLeft() int {
	limit := r.Level.Spec.PingLimit
	if limit <= 0 {
		return -1
	}
	return max(0, limit-r.PingsUsed)
}

// CollectKey picks up the key when pos is within reach; true only on the pickup frame
func (r *Runtime) CollectKey(pos vmath.XZ) bool {
	k := r.Level.Key
	if k == nil || r.KeyCollected {
		return false
	}
	reach := math.Max(parameter.KeyPickupMin, r.cellSize()*parameter.KeyPickupFactor)
	if vmath.XZDist(pos, k.Pos.XZ()) >= reach {
		return false
	}
	r.KeyCollected = true
	return true
}

// ActivateBeacons lights every unlit beacon within reach of pos and appends their indices to dst
func (r *Runtime) ActivateBeacons(pos vmath.XZ, dst []int) []int {
	reach := math.Max(parameter.BeaconPickupMin, r.cellSize()*parameter.BeaconPickupFactor)
	for i, b := range r.Level.Beacons {
		if r.Activated[i] {
			continue
		}
		if vmath.XZDist(pos, b.Pos.XZ()) < reach {
			r.Activated[i] = true
			dst = append(dst, i)
		}
	}
	return dst
}

// LitCount returns the number of activated beacons
func (r *Runtime) LitCount() int {
	n := 0
	for _, on := range r.Activated {
		if on {
			n++
		}
	}
	return n
}

// ChimeDue reports whether the periodic beacon chime should run at now
func (r *Runtime) ChimeDue(now float64) bool {
	return r.LitCount() > 0 && now-r.lastChime > parameter.BeaconChimeInterval.Seconds()
}

// MarkChimed records a chime at now
func (r *Runtime) MarkChimed(now float64) {
	r.lastChime = now
}

// KnockDue reports whether the exit knock should repeat at now
func (r *Runtime) KnockDue(now float64) bool {
	return now-r.lastKnock >= parameter.ExitKnockInterval.Seconds()
}

// MarkKnocked records a knock at now
func (r *Runtime) MarkKnocked(now float64) {
	r.lastKnock = now
}

// CanExit reports whether the door opens
func (r *Runtime) CanExit() bool {
	return !r.Level.RequiresKey || r.KeyCollected
}

// DoorOutcome is the result of standing near the exit door
type DoorOutcome uint8

const (
	DoorAway DoorOutcome = iota
	DoorOpened
	// DoorBlocked: in reach without the key, cue already played
	DoorBlocked
	// DoorBlockedCue: in reach without the key, first frame
	DoorBlockedCue
)

// CheckDoor evaluates the exit door for a listener at pos
func (r *Runtime) CheckDoor(pos vmath.XZ, now float64) DoorOutcome {
	door := r.Level.Geometry.ExitDoor
	reach := math.Max(r.cellSize()*parameter.DoorReachFactor, door.Width*parameter.DoorReachWidthFactor)
	if vmath.XZDist(pos, door.Position.XZ()) >= reach {
		r.blockedCuePlay = false
		return DoorAway
	}
	if r.CanExit() {
		r.blockedCuePlay = false
		return DoorOpened
	}
	if r.blockedCuePlay {
		return DoorBlocked
	}
	r.blockedCuePlay = true
	r.lastKnock = now
	return DoorBlockedCue
}

// CheckTimer flags expiry once elapsed passes the time limit
func (r *Runtime) CheckTimer(elapsed float64) bool {
	limit := r.Level.Spec.TimeLimit
	if limit <= 0 || r.TimerExpired {
		return r.TimerExpired
	}
	if elapsed >= limit {
		r.TimerExpired = true
	}
	return r.TimerExpired
}

// TimeLeft returns the remaining seconds, -1 without a limit
func (r *Runtime) TimeLeft(elapsed float64) float64 {
	limit := r.Level.Spec.TimeLimit
	if limit <= 0 {
		return -1
	}
	return math.Max(0, limit-elapsed)
}

// Sync pushes key and beacon state into the scene's render attributes
func (r *Runtime) Sync(scene *culling.Scene) {
	scene.SetKeyHidden(r.KeyCollected)
	for i, on := range r.Activated {
		scene.SetBeaconLit(i, on)
	}
}
