package domain

// AllSites is the selector value that aggregates every launch site.
const AllSites = "All"

// PayloadRange is the closed interval chosen on the payload control.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Valid reports whether Low <= High.
func (r PayloadRange) Valid() bool {
	return r.Low <= r.High
}

// Contains reports whether mass lies within the range.
// An inverted range filters nothing.
func (r PayloadRange) Contains(mass float64) bool {
	if !r.Valid() {
		return true
	}
	return mass >= r.Low && mass <= r.High
}

// MatchesSite reports whether a record belongs to the selected site.
func MatchesSite(selected string, rec LaunchRecord) bool {
	return selected == AllSites || rec.Site == selected
}
