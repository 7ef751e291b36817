// pvcurve characterizes a photovoltaic module's I-V curve from single-diode
// parameters, either given directly or derived from irradiance and weather
// via the De Soto and SAPM temperature models. Optionally writes the sampled
// curve to CSV and estimates AC output through a Sandia inverter model.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/gopv/gopv/internal/log"
	"github.com/gopv/gopv/pkg/celltemp"
	"github.com/gopv/gopv/pkg/inverter"
	"github.com/gopv/gopv/pkg/singlediode"
)

func main() {
	var (
		// Direct diode parameters (defaults approximate a 72-cell 210 W module)
		il     = flag.Float64("il", 5.658, "Photocurrent IL (A)")
		i0     = flag.Float64("i0", 4.629e-11, "Saturation current I0 (A)")
		rs     = flag.Float64("rs", 0.386, "Series resistance Rs (ohm)")
		rsh    = flag.Float64("rsh", 269.68, "Shunt resistance Rsh (ohm)")
		nNsVth = flag.Float64("nnsvth", 1.8679, "Thermal voltage product nNsVth (V)")

		// Weather-driven mode: derive the diode parameters from conditions
		poa     = flag.Float64("poa", 0, "Plane-of-array irradiance (W/m²); >0 enables De Soto mode")
		tempAir = flag.Float64("temp-air", 20, "Ambient temperature (°C), De Soto mode")
		wind    = flag.Float64("wind", 1, "Wind speed at 10 m (m/s), De Soto mode")

		points    = flag.Float64("points", 0, "Number of I-V samples for CSV output (<2 disables)")
		csvOutput = flag.String("csv", "", "Optional CSV output file for the sampled curve")

		// Optional inverter AC estimate
		paco = flag.Float64("paco", 0, "Inverter rated AC power (W); >0 enables AC estimate")
		pdco = flag.Float64("pdco", 0, "Inverter DC power rating (W)")
		vdco = flag.Float64("vdco", 0, "Inverter nominal DC voltage (V)")
		pso  = flag.Float64("pso", 0, "Inverter start-up DC power (W)")

		debug = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	params := singlediode.Params{
		IL:     []float64{*il},
		I0:     []float64{*i0},
		Rs:     []float64{*rs},
		Rsh:    []float64{*rsh},
		NNsVth: []float64{*nNsVth},
	}

	if *poa > 0 {
		// Weather-driven mode: SAPM cell temperature feeds the De Soto
		// translation of the reference module constants.
		_, cell, err := celltemp.SAPM(
			[]float64{*poa}, []float64{*wind}, []float64{*tempAir},
			celltemp.OpenRackGlassGlass,
		)
		if err != nil {
			log.Fatalf("cell temperature model failed: %v", err)
		}
		module := singlediode.DeSotoModule{
			AlphaSC: 3.5e-3,
			ARef:    *nNsVth,
			ILRef:   *il,
			I0Ref:   *i0,
			RshRef:  *rsh,
			Rs:      *rs,
			EgRef:   singlediode.EgRefSilicon,
			DEgdT:   singlediode.DEgdTSilicon,
		}
		params, err = singlediode.CalcParamsDeSoto([]float64{*poa}, cell, module)
		if err != nil {
			log.Fatalf("De Soto parameter translation failed: %v", err)
		}
		log.Infow("derived operating-condition diode parameters",
			"cellTempC", cell[0], "IL", params.IL[0], "I0", params.I0[0],
			"Rsh", params.Rsh[0], "nNsVth", params.NNsVth[0])
	}

	result, err := params.Characterize(*points, singlediode.DefaultOptions())
	if err != nil {
		log.Fatalf("curve characterization failed: %v", err)
	}
	if !result.Converged[0] {
		log.Warnf("maximum power point search did not converge after %d iterations; values are best-effort", result.MPPIterations)
	}

	fmt.Printf("I-V Curve Characterization\n")
	fmt.Printf("==========================\n\n")
	fmt.Printf("  Isc: %8.3f A\n", result.Isc[0])
	fmt.Printf("  Voc: %8.3f V\n", result.Voc[0])
	fmt.Printf("  Imp: %8.3f A\n", result.Imp[0])
	fmt.Printf("  Vmp: %8.3f V\n", result.Vmp[0])
	fmt.Printf("  Pmp: %8.3f W\n", result.Pmp[0])
	fmt.Printf("  Ix:  %8.3f A\n", result.Ix[0])
	fmt.Printf("  Ixx: %8.3f A\n", result.Ixx[0])

	if *paco > 0 {
		model := inverter.SandiaModel{Paco: *paco, Pdco: *pdco, Vdco: *vdco, Pso: *pso}
		ac, err := inverter.Sandia([]float64{result.Vmp[0]}, []float64{result.Pmp[0]}, model)
		if err != nil {
			log.Fatalf("inverter model failed: %v", err)
		}
		fmt.Printf("  Pac: %8.3f W\n", ac[0])
	}

	if *csvOutput != "" {
		if result.V == nil {
			log.Fatalf("CSV output requested but -points is below 2")
		}
		if err := writeCurveCSV(*csvOutput, result); err != nil {
			log.Fatalf("failed to write CSV: %v", err)
		}
		log.Infof("wrote sampled curve to %s", *csvOutput)
	}
}

// writeCurveCSV writes the first operating condition's sampled curve as
// voltage,current rows.
func writeCurveCSV(path string, r *singlediode.CurveResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"voltage_v", "current_a"}); err != nil {
		return err
	}
	_, cols := r.V.Dims()
	for c := 0; c < cols; c++ {
		rec := []string{
			strconv.FormatFloat(r.V.At(0, c), 'g', -1, 64),
			strconv.FormatFloat(r.I.At(0, c), 'g', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
}
