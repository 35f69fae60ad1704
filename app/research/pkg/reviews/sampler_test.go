package reviews

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample(t *testing.T) {
	now := time.Date(2024, 6, 30, 23, 0, 0, 0, time.UTC)
	ranges := map[string][2]float64{}
	for _, tpl := range templates("x") {
		ranges[tpl.role] = [2]float64{tpl.minRating, tpl.maxRating}
	}

	for seed := uint64(0); seed < 50; seed++ {
		s := NewSampler(rand.New(rand.NewPCG(seed, seed+1)), func() time.Time { return now })
		got := s.Sample("Acme Inc")

		require.GreaterOrEqual(t, len(got), 3)
		require.LessOrEqual(t, len(got), 4)

		roles := map[string]bool{}
		for _, r := range got {
			assert.False(t, roles[r.Role], "duplicate role %s", r.Role)
			roles[r.Role] = true

			rg, ok := ranges[r.Role]
			require.True(t, ok)
			assert.GreaterOrEqual(t, r.Rating, rg[0])
			assert.LessOrEqual(t, r.Rating, rg[1])
			assert.Equal(t, r.Rating, math.Round(r.Rating*10)/10)

			assert.Contains(t, r.Pros, "Acme")
			assert.NotContains(t, r.Pros, "Acme Inc")

			date, err := time.Parse(time.DateOnly, r.Date)
			require.NoError(t, err)
			days := int(now.Truncate(24*time.Hour).Sub(date).Hours() / 24)
			assert.GreaterOrEqual(t, days, 30)
			assert.LessOrEqual(t, days, 365)
		}
	}
}

func TestSample_Defaults(t *testing.T) {
	got := NewSampler(nil, nil).Sample("Globex")
	assert.NotEmpty(t, got)
}
