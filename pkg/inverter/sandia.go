// Package inverter converts DC power at the array maximum power point into
// AC power delivered to the grid using the Sandia (SNL) grid-connected
// inverter performance model.
package inverter

import "github.com/gopv/gopv/internal/broadcast"

// SandiaModel holds the performance coefficients of one inverter as
// published in the SNL inverter database.
type SandiaModel struct {
	Paco float64 // rated AC power, W
	Pdco float64 // DC power at which rated AC power is reached, W
	Vdco float64 // DC voltage at which the nameplate applies, V
	Pso  float64 // DC power required to start inversion, W
	C0   float64 // curvature of the AC-DC relation at reference, 1/W
	C1   float64 // variation of Pdco with DC voltage, 1/V
	C2   float64 // variation of Pso with DC voltage, 1/V
	C3   float64 // variation of C0 with DC voltage, 1/V
	Pnt  float64 // night tare draw from the grid, W
}

// Sandia returns AC power (W) for each (DC voltage, DC power) operating
// point. Output is clipped at Paco; below the start-up threshold the
// inverter draws its night tare and output is -Pnt. Inputs broadcast
// elementwise.
func Sandia(vdc, pdc []float64, m SandiaModel) ([]float64, error) {
	vecs, n, err := broadcast.Align(vdc, pdc)
	if err != nil {
		return nil, err
	}
	v, p := vecs[0], vecs[1]

	ac := make([]float64, n)
	for i := 0; i < n; i++ {
		dv := v[i] - m.Vdco
		a := m.Pdco * (1 + m.C1*dv)
		b := m.Pso * (1 + m.C2*dv)
		c := m.C0 * (1 + m.C3*dv)

		pac := (m.Paco/(a-b)-c*(a-b))*(p[i]-b) + c*(p[i]-b)*(p[i]-b)
		switch {
		case p[i] < m.Pso:
			pac = -m.Pnt
		case pac > m.Paco:
			pac = m.Paco
		}
		ac[i] = pac
	}
	return ac, nil
}
