// Package celltemp estimates photovoltaic module and cell operating
// temperatures from plane-of-array irradiance and weather using the Sandia
// Array Performance Model empirical fit.
package celltemp

import (
	"math"

	"github.com/gopv/gopv/internal/broadcast"
)

// SAPMParams are the empirically fitted mount-dependent coefficients of the
// SAPM temperature model.
type SAPMParams struct {
	A      float64 // irradiance coefficient, ln(°C·m²/W) at zero wind
	B      float64 // wind coefficient, s/m
	DeltaT float64 // cell-to-back-surface temperature rise at 1000 W/m², °C
}

// Standard SAPM mount coefficient sets.
var (
	OpenRackGlassGlass   = SAPMParams{A: -3.47, B: -0.0594, DeltaT: 3}
	CloseRoofGlassGlass  = SAPMParams{A: -2.98, B: -0.0471, DeltaT: 1}
	OpenRackGlassPolymer = SAPMParams{A: -3.56, B: -0.0750, DeltaT: 3}
	InsulatedBackPolymer = SAPMParams{A: -2.81, B: -0.0455, DeltaT: 0}
)

// irradianceRef normalizes the cell temperature rise, W/m².
const irradianceRef = 1000.0

// SAPM returns the back-surface module temperature and the cell temperature
// (both °C) for each operating condition:
//
//	Tm = POA·exp(a + b·WS) + Ta
//	Tc = Tm + POA/1000·ΔT
//
// poaGlobal is plane-of-array irradiance (W/m²), windSpeed is measured at
// standard 10 m height (m/s), tempAir is ambient dry-bulb (°C). Inputs
// broadcast elementwise; incompatible lengths are an error.
func SAPM(poaGlobal, windSpeed, tempAir []float64, p SAPMParams) (module, cell []float64, err error) {
	vecs, n, err := broadcast.Align(poaGlobal, windSpeed, tempAir)
	if err != nil {
		return nil, nil, err
	}
	poa, ws, ta := vecs[0], vecs[1], vecs[2]

	module = make([]float64, n)
	cell = make([]float64, n)
	for i := 0; i < n; i++ {
		module[i] = poa[i]*math.Exp(p.A+p.B*ws[i]) + ta[i]
		cell[i] = module[i] + poa[i]/irradianceRef*p.DeltaT
	}
	return module, cell, nil
}
