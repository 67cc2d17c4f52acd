package optics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetRejectsNonPositive(t *testing.T) {
	p := DefaultParameters()
	orig := p

	for _, v := range []float64{0, -0.1} {
		for i := Param(0); i < numParams; i++ {
			err := p.Set(i, v)
			assert.Error(t, err, "%s = %v", i, v)
		}
	}
	// Rejected updates leave the previous state active.
	assert.Equal(t, orig, p)
}

func TestSetGetRoundTrip(t *testing.T) {
	p := DefaultParameters()
	for i := Param(0); i < numParams; i++ {
		want := 0.25 + float64(i)*0.05
		assert.NoError(t, p.Set(i, want))
		assert.Equal(t, want, p.Get(i))
	}
}

func TestParseParam(t *testing.T) {
	for i := Param(0); i < numParams; i++ {
		got, err := ParseParam(i.String())
		assert.NoError(t, err)
		assert.Equal(t, i, got)
	}
	_, err := ParseParam("bogus")
	assert.Error(t, err)
}

func TestPrimary(t *testing.T) {
	assert.True(t, FocalLength.Primary())
	assert.True(t, DisplayHeight.Primary())
	assert.False(t, LensDiameter.Primary())
	assert.False(t, DisplayThickness.Primary())
}

func TestDescriptors(t *testing.T) {
	specs := SliderSpecs()
	assert.Len(t, specs, int(numParams))
	p := DefaultParameters()
	for _, s := range specs {
		assert.Equal(t, s.Param.String(), s.Name)
		assert.Less(t, s.Min, s.Max)
		assert.Greater(t, s.Step, 0.0)
		// The baseline sits inside every slider's range.
		v := p.Get(s.Param)
		assert.GreaterOrEqual(t, v, s.Min, s.Name)
		assert.LessOrEqual(t, v, s.Max, s.Name)
	}

	d := Compute(p, DefaultFarMargin)
	disp := Displays(p, d)
	names := map[string]bool{}
	for _, dd := range disp {
		names[dd.Name] = true
	}
	assert.True(t, names["magnification"])
	assert.True(t, names["focalLength"])
	assert.True(t, names["fovVerticalDeg"])
}
