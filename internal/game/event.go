package game

// EventType enum for event classification
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeShipBound
	EventTypeControllerUnbound
	EventTypeShipDestroyed
	EventTypeBulletFired
	EventTypeBulletExpired
	EventTypeMeteorSpawned
	EventTypeMeteorDestroyed
	EventTypeMeteorFragmented
	EventTypeWave
	EventTypeSlotExhausted
)

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypeShipBound:
		return "ship_bound"
	case EventTypeControllerUnbound:
		return "controller_unbound"
	case EventTypeShipDestroyed:
		return "ship_destroyed"
	case EventTypeBulletFired:
		return "bullet_fired"
	case EventTypeBulletExpired:
		return "bullet_expired"
	case EventTypeMeteorSpawned:
		return "meteor_spawned"
	case EventTypeMeteorDestroyed:
		return "meteor_destroyed"
	case EventTypeMeteorFragmented:
		return "meteor_fragmented"
	case EventTypeWave:
		return "wave"
	case EventTypeSlotExhausted:
		return "slot_exhausted"
	default:
		return "unknown"
	}
}

// MarshalText lets events encode with readable type names.
func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Slot kinds reported by EventTypeSlotExhausted and ship destruction causes.
const (
	KindShip   = "ship"
	KindBullet = "bullet"
	KindMeteor = "meteor"
)

// Event is something that happened during a tick.
// Only the fields meaningful for the type are set.
type Event struct {
	Type       EventType `json:"type"`
	Tick       uint64    `json:"tick"`
	Slot       int       `json:"slot"`
	Controller int       `json:"controller"`
	Tier       int       `json:"tier,omitempty"`
	Count      int       `json:"count,omitempty"` // Children spawned, wave size
	Kind       string    `json:"kind,omitempty"`  // Exhausted slot kind, or what killed a ship
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
}
