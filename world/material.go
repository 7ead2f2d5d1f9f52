package world

// Material holds the acoustic response of a surface
type Material struct {
	ID       int
	Name     string
	Reflect  float64 // fraction of energy reflected, 0..1
	AbsorbHF float64 // high-frequency absorption, 0..1
}

// Material IDs, 0 means none
const (
	MatNone = iota
	MatOuter
	MatInner
	MatMetal
	MatDoor
	MatKey
	MatBeaconDark
	MatBeaconLit
)

var catalog = [...]Material{
	{},
	{ID: MatOuter, Name: "outerWall", Reflect: 0.70, AbsorbHF: 0.35},
	{ID: MatInner, Name: "stone", Reflect: 0.55, AbsorbHF: 0.50},
	{ID: MatMetal, Name: "metal", Reflect: 0.85, AbsorbHF: 0.15},
	{ID: MatDoor, Name: "exitDoor", Reflect: 0.90, AbsorbHF: 0.25},
	{ID: MatKey, Name: "key", Reflect: 0.80, AbsorbHF: 0.20},
	{ID: MatBeaconDark, Name: "beaconOff", Reflect: 0.50, AbsorbHF: 0.35},
	{ID: MatBeaconLit, Name: "beaconOn", Reflect: 0.80, AbsorbHF: 0.20},
}

// MaterialByID returns a copy of the catalog entry; ok is false for unknown IDs
func MaterialByID(id int) (m Material, ok bool) {
	if id <= MatNone || id >= len(catalog) {
		return Material{}, false
	}
	return catalog[id], true
}
