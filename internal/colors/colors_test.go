package colors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food_maps/internal/colors"
)

func TestParseScale(t *testing.T) {
	s, err := colors.ParseScale("LOG")
	require.NoError(t, err)
	assert.Equal(t, colors.Log, s)

	s, err = colors.ParseScale("linear")
	require.NoError(t, err)
	assert.Equal(t, colors.Linear, s)

	_, err = colors.ParseScale("cubic")
	assert.Error(t, err)
}

func TestMapper_ZeroCountIsFloorColor(t *testing.T) {
	for _, scale := range []colors.Scale{colors.Log, colors.Linear} {
		m := colors.NewMapper(scale, 0, 120, nil)
		assert.Equal(t, colors.CoolWarm.Floor(), m.Color(0), scale.String())
		assert.Equal(t, 0.0, m.Position(0), scale.String())
	}
}

func TestMapper_LogEndpoints(t *testing.T) {
	m := colors.NewMapper(colors.Log, 0, 100, nil)
	assert.Equal(t, 0.0, m.Position(1))
	assert.InDelta(t, 0.5, m.Position(10), 1e-9)
	assert.Equal(t, 1.0, m.Position(100))
	assert.Equal(t, "#b40426", m.Color(100))
	assert.Equal(t, "#3b4cc0", m.Color(1))
}

func TestMapper_LinearEndpoints(t *testing.T) {
	m := colors.NewMapper(colors.Linear, 10, 20, nil)
	assert.Equal(t, 0.0, m.Position(10))
	assert.InDelta(t, 0.5, m.Position(15), 1e-9)
	assert.Equal(t, 1.0, m.Position(20))
	assert.Equal(t, 1.0, m.Position(25), "clamped above max")
	assert.Equal(t, 0.0, m.Position(3), "clamped below min")
}

func TestMapper_Monotonic(t *testing.T) {
	for _, scale := range []colors.Scale{colors.Log, colors.Linear} {
		m := colors.NewMapper(scale, 0, 500, nil)
		prev := -1.0
		for v := 0; v <= 600; v++ {
			pos := m.Position(v)
			require.GreaterOrEqual(t, pos, prev, "%s v=%d", scale, v)
			prev = pos
		}
	}
}

func TestMapper_DegenerateRange(t *testing.T) {
	m := colors.NewMapper(colors.Log, 0, 0, nil)
	assert.NotPanics(t, func() { _ = m.Color(0) })
	assert.Equal(t, colors.CoolWarm.Floor(), m.Color(0))

	m = colors.NewMapper(colors.Linear, 7, 7, nil)
	assert.Equal(t, colors.CoolWarm.Floor(), m.Color(7))
}
