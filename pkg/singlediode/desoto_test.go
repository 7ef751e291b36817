package singlediode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testModule = DeSotoModule{
	AlphaSC: 3.5e-3,
	ARef:    1.8679,
	ILRef:   5.658,
	I0Ref:   4.629e-11,
	RshRef:  269.68,
	Rs:      0.386,
	EgRef:   EgRefSilicon,
	DEgdT:   DEgdTSilicon,
}

// TestDeSotoReferenceConditions checks that STC inputs reproduce the
// reference constants unchanged.
func TestDeSotoReferenceConditions(t *testing.T) {
	p, err := CalcParamsDeSoto([]float64{1000}, []float64{25}, testModule)
	require.NoError(t, err)

	assert.Equal(t, testModule.ILRef, p.IL[0])
	assert.Equal(t, testModule.I0Ref, p.I0[0])
	assert.Equal(t, testModule.RshRef, p.Rsh[0])
	assert.Equal(t, testModule.Rs, p.Rs[0])
	assert.Equal(t, testModule.ARef, p.NNsVth[0])
}

func TestDeSotoIrradianceScaling(t *testing.T) {
	p, err := CalcParamsDeSoto([]float64{500, 200}, []float64{25}, testModule)
	require.NoError(t, err)

	// Photocurrent scales linearly, shunt resistance inversely.
	assert.InDelta(t, testModule.ILRef/2, p.IL[0], 1e-12)
	assert.InDelta(t, testModule.RshRef*2, p.Rsh[0], 1e-9)
	assert.InDelta(t, testModule.ILRef/5, p.IL[1], 1e-12)
	assert.InDelta(t, testModule.RshRef*5, p.Rsh[1], 1e-9)

	// Temperature-only quantities are untouched at 25 °C.
	assert.Equal(t, testModule.I0Ref, p.I0[0])
	assert.Equal(t, testModule.ARef, p.NNsVth[0])
}

func TestDeSotoTemperatureDependence(t *testing.T) {
	p, err := CalcParamsDeSoto([]float64{1000}, []float64{50}, testModule)
	require.NoError(t, err)

	// Thermal voltage scales with absolute temperature.
	assert.InDelta(t, testModule.ARef*323.15/298.15, p.NNsVth[0], 1e-12)

	// Photocurrent gains alpha·ΔT.
	assert.InDelta(t, testModule.ILRef+testModule.AlphaSC*25, p.IL[0], 1e-12)

	// Saturation current grows steeply with temperature, about 49× over
	// 25 K for the silicon bandgap constants.
	assert.InDelta(t, 48.7, p.I0[0]/testModule.I0Ref, 0.5)

	// Hotter cell, lower Voc: characterize both and compare.
	stc, err := CalcParamsDeSoto([]float64{1000}, []float64{25}, testModule)
	require.NoError(t, err)
	hotRes, err := p.Characterize(0, DefaultOptions())
	require.NoError(t, err)
	stcRes, err := stc.Characterize(0, DefaultOptions())
	require.NoError(t, err)
	assert.Less(t, hotRes.Voc[0], stcRes.Voc[0])
	assert.Less(t, hotRes.Pmp[0], stcRes.Pmp[0])
}

func TestDeSotoZeroIrradiance(t *testing.T) {
	// Division is unguarded: zero irradiance gives zero photocurrent and an
	// infinite shunt resistance.
	p, err := CalcParamsDeSoto([]float64{0}, []float64{25}, testModule)
	require.NoError(t, err)
	assert.Zero(t, p.IL[0])
	assert.True(t, math.IsInf(p.Rsh[0], 1))
}

func TestDeSotoShapeMismatch(t *testing.T) {
	_, err := CalcParamsDeSoto([]float64{1000, 800}, []float64{25, 25, 25}, testModule)
	require.Error(t, err)
}
