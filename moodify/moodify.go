package moodify

import (
	"fmt"
	"strings"
)

// Energy is the coarse intensity bucket that drives BPM targeting.
type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

// ParseEnergy coerces anything that isn't a known tier to EnergyMedium.
func ParseEnergy(s string) Energy {
	switch e := Energy(strings.ToLower(strings.TrimSpace(s))); e {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return e
	default:
		return EnergyMedium
	}
}

// BPMRange is an inclusive tempo window.
type BPMRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// bpmRanges is the only place tier bounds are defined. Feature hints and
// the tempo filter both read from it.
var bpmRanges = map[Energy]BPMRange{
	EnergyLow:    {Min: 50, Max: 85},
	EnergyMedium: {Min: 85, Max: 115},
	EnergyHigh:   {Min: 115, Max: 200},
}

// Range returns the BPM window for the tier. Unknown tiers get the medium window.
func (e Energy) Range() BPMRange {
	if r, ok := bpmRanges[e]; ok {
		return r
	}
	return bpmRanges[EnergyMedium]
}

// Midpoint is (Min+Max)/2 using integer division.
func (r BPMRange) Midpoint() int {
	return (r.Min + r.Max) / 2
}

// Widen returns the range grown by delta on both sides.
func (r BPMRange) Widen(delta int) BPMRange {
	return BPMRange{Min: r.Min - delta, Max: r.Max + delta}
}

func (r BPMRange) Contains(bpm float64) bool {
	return bpm >= float64(r.Min) && bpm <= float64(r.Max)
}

func (r BPMRange) String() string {
	return fmt.Sprintf("%d-%d BPM", r.Min, r.Max)
}

// Intent is the structured reading of a free-text request.
type Intent struct {
	// Artist is nil unless a real name was detected.
	Artist    *string
	Mood      string
	Context   string
	Energy    Energy
	GenreHint string
}

// DefaultIntent is used whenever intent extraction fails.
func DefaultIntent() Intent {
	return Intent{
		Artist:    nil,
		Mood:      "general",
		Context:   "general",
		Energy:    EnergyMedium,
		GenreHint: "pop",
	}
}

// NormalizeArtist maps placeholder tokens like "null" and "none" to nil.
func NormalizeArtist(s *string) *string {
	if s == nil {
		return nil
	}
	name := strings.TrimSpace(*s)
	switch strings.ToLower(name) {
	case "", "null", "none":
		return nil
	}
	return &name
}

// Track is a catalog track as returned by search.
type Track struct {
	ID         string
	Title      string
	ArtistName string
	AlbumName  string
	URL        string
	PreviewURL *string
}

// Features are estimated, not measured.
type Features struct {
	// BPM is nil when the estimate was missing or not a number.
	BPM     *float64
	Energy  float64
	Valence float64
}

var fallbackMoods = map[Energy]struct{ energy, valence float64 }{
	EnergyLow:    {energy: 0.25, valence: 0.3},
	EnergyMedium: {energy: 0.55, valence: 0.5},
	EnergyHigh:   {energy: 0.85, valence: 0.7},
}

// FallbackFeatures is the fixed tuple for a tier, centred on the tier's midpoint.
func FallbackFeatures(e Energy) Features {
	m, ok := fallbackMoods[e]
	if !ok {
		m = fallbackMoods[EnergyMedium]
	}
	bpm := float64(e.Range().Midpoint())
	return Features{BPM: &bpm, Energy: m.energy, Valence: m.valence}
}

// EnrichedTrack is a catalog track plus its estimated features.
type EnrichedTrack struct {
	Track
	Features Features
}

// TempoMatch names the filter tier that produced a playlist.
type TempoMatch string

const (
	TempoMatchNone      TempoMatch = "none"
	TempoMatchStrict    TempoMatch = "strict"
	TempoMatchRelaxed   TempoMatch = "relaxed"
	TempoMatchProximity TempoMatch = "proximity"
)
