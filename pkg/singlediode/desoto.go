package singlediode

import (
	"math"

	"github.com/gopv/gopv/internal/broadcast"
)

// boltzmannEV is the Boltzmann constant in eV/K.
const boltzmannEV = 8.617332478e-5

// Params bundles the five diode-equation parameter vectors for a batch of
// operating conditions, ready to feed CharacterizeCurve.
type Params struct {
	IL     []float64 // photocurrent, A
	I0     []float64 // diode saturation current, A
	Rs     []float64 // series resistance, ohm
	Rsh    []float64 // shunt resistance, ohm
	NNsVth []float64 // ideality factor × cells in series × thermal voltage, V
}

// Characterize runs CharacterizeCurve on the parameter set.
func (p Params) Characterize(numPoints float64, opt Options) (*CurveResult, error) {
	return CharacterizeCurve(p.IL, p.I0, p.Rs, p.Rsh, p.NNsVth, numPoints, opt)
}

// DeSotoModule holds the reference-condition constants of the De Soto
// five-parameter model for one module type, as fitted at STC.
type DeSotoModule struct {
	AlphaSC float64 // short-circuit current temperature coefficient, A/K
	ARef    float64 // nNsVth at reference temperature, V
	ILRef   float64 // photocurrent at reference conditions, A
	I0Ref   float64 // saturation current at reference conditions, A
	RshRef  float64 // shunt resistance at reference conditions, ohm
	Rs      float64 // series resistance, taken constant, ohm
	EgRef   float64 // bandgap energy at reference temperature, eV
	DEgdT   float64 // temperature dependence of the bandgap, 1/K
}

// Silicon bandgap defaults from De Soto et al. (2006).
const (
	EgRefSilicon = 1.121
	DEgdTSilicon = -0.0002677
)

// Reference conditions of the De Soto fit.
const (
	irradianceRef = 1000.0 // W/m²
	tempRefC      = 25.0   // °C
)

// CalcParamsDeSoto translates effective irradiance (W/m²) and cell
// temperature (°C) into diode parameters at those operating conditions using
// the De Soto model. The two inputs broadcast against each other. Zero
// irradiance yields an infinite shunt resistance by IEEE division, consistent
// with the rest of the package's unguarded arithmetic.
func CalcParamsDeSoto(effIrrad, tempCell []float64, m DeSotoModule) (Params, error) {
	vecs, n, err := broadcast.Align(effIrrad, tempCell)
	if err != nil {
		return Params{}, &ShapeError{Name: "TempCell", Len: len(tempCell), Want: len(effIrrad)}
	}
	e, tc := vecs[0], vecs[1]

	p := Params{
		IL:     make([]float64, n),
		I0:     make([]float64, n),
		Rs:     make([]float64, n),
		Rsh:    make([]float64, n),
		NNsVth: make([]float64, n),
	}
	tRefK := tempRefC + 273.15
	for i := 0; i < n; i++ {
		tK := tc[i] + 273.15
		eg := m.EgRef * (1 + m.DEgdT*(tK-tRefK))

		p.NNsVth[i] = m.ARef * tK / tRefK
		p.IL[i] = e[i] / irradianceRef * (m.ILRef + m.AlphaSC*(tK-tRefK))
		p.I0[i] = m.I0Ref * math.Pow(tK/tRefK, 3) *
			math.Exp(m.EgRef/(boltzmannEV*tRefK)-eg/(boltzmannEV*tK))
		p.Rsh[i] = m.RshRef * irradianceRef / e[i]
		p.Rs[i] = m.Rs
	}
	return p, nil
}
