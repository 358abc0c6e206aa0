package recommend

import (
	"math"
	"testing"

	"github.com/mager/moodify/moodify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enriched(id string, bpm *float64) moodify.EnrichedTrack {
	return moodify.EnrichedTrack{
		Track:    track(id, "song "+id, "artist"),
		Features: moodify.Features{BPM: bpm, Energy: 0.5, Valence: 0.5},
	}
}

func enrichedIDs(tracks []moodify.EnrichedTrack) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.ID
	}
	return out
}

func TestFilterByTempo(t *testing.T) {
	tests := []struct {
		name      string
		tracks    []moodify.EnrichedTrack
		energy    moodify.Energy
		wantIDs   []string
		wantMatch moodify.TempoMatch
	}{
		{
			name:      "strict keeps only in-range tracks, bounds inclusive",
			tracks:    []moodify.EnrichedTrack{enriched("a", floatp(50)), enriched("b", floatp(95)), enriched("c", floatp(85)), enriched("d", nil)},
			energy:    moodify.EnergyLow,
			wantIDs:   []string{"a", "c"},
			wantMatch: moodify.TempoMatchStrict,
		},
		{
			name:      "strict is preferred even when relaxed would keep more",
			tracks:    []moodify.EnrichedTrack{enriched("a", floatp(120)), enriched("b", floatp(100)), enriched("c", floatp(112))},
			energy:    moodify.EnergyHigh,
			wantIDs:   []string{"a"},
			wantMatch: moodify.TempoMatchStrict,
		},
		{
			name:      "relaxed widens by fifteen",
			tracks:    []moodify.EnrichedTrack{enriched("a", floatp(100)), enriched("b", floatp(101)), enriched("c", floatp(35)), enriched("d", floatp(34))},
			energy:    moodify.EnergyLow,
			wantIDs:   []string{"a", "c"},
			wantMatch: moodify.TempoMatchRelaxed,
		},
		{
			name:      "proximity sorts by distance to midpoint with missing bpm last",
			tracks:    []moodify.EnrichedTrack{enriched("far", floatp(190)), enriched("none", nil), enriched("near", floatp(135)), enriched("mid", floatp(160))},
			energy:    moodify.EnergyMedium,
			wantIDs:   []string{"near", "mid", "far", "none"},
			wantMatch: moodify.TempoMatchProximity,
		},
		{
			name:      "proximity keeps input order for ties",
			tracks:    []moodify.EnrichedTrack{enriched("x", nil), enriched("lo", floatp(40)), enriched("y", nil), enriched("hi", floatp(160))},
			energy:    moodify.EnergyMedium,
			wantIDs:   []string{"lo", "hi", "x", "y"},
			wantMatch: moodify.TempoMatchProximity,
		},
		{
			name:      "empty input",
			tracks:    nil,
			energy:    moodify.EnergyHigh,
			wantIDs:   []string{},
			wantMatch: moodify.TempoMatchNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, match := FilterByTempo(tt.tracks, tt.energy, DefaultRelaxBPM)
			assert.Equal(t, tt.wantIDs, enrichedIDs(got))
			assert.Equal(t, tt.wantMatch, match)
		})
	}
}

func TestFilterByTempoProximityIsNonDecreasing(t *testing.T) {
	bpms := []*float64{floatp(300), nil, floatp(10), floatp(250), floatp(12), nil, floatp(201), floatp(49)}
	tracks := make([]moodify.EnrichedTrack, len(bpms))
	for i, b := range bpms {
		tracks[i] = enriched(string(rune('a'+i)), b)
	}

	for _, energy := range []moodify.Energy{moodify.EnergyLow, moodify.EnergyMedium, moodify.EnergyHigh} {
		got, match := FilterByTempo(tracks, energy, 0)
		require.NotEmpty(t, got)
		if match != moodify.TempoMatchProximity {
			continue
		}
		require.Len(t, got, len(tracks))
		mid := float64(energy.Range().Midpoint())
		prev := -1.0
		for _, tr := range got {
			d := tempoDistance(tr, mid)
			assert.GreaterOrEqual(t, d, prev)
			prev = d
		}
		assert.Equal(t, math.MaxFloat64, tempoDistance(got[len(got)-1], mid))
	}
}

func TestFilterByTempoDoesNotMutateInput(t *testing.T) {
	tracks := []moodify.EnrichedTrack{enriched("b", floatp(190)), enriched("a", floatp(130))}
	FilterByTempo(tracks, moodify.EnergyMedium, DefaultRelaxBPM)
	assert.Equal(t, []string{"b", "a"}, enrichedIDs(tracks))
}
