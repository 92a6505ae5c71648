//go:build analysis

// Command analysis samples keys and signatures for one parameter set and
// renders coefficient and rejection statistics as an HTML report.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"ntrumls-signature/measure"
	"ntrumls-signature/measureutil"
	ntru "ntrumls-signature/ntru"
	ntrurio "ntrumls-signature/ntru/io"
)

type report struct {
	ParamSet       string                  `json:"param_set"`
	Runs           int                     `json:"runs"`
	SignsPerKey    int                     `json:"signs_per_key"`
	AcceptanceRate float64                 `json:"acceptance_rate"`
	Stats          map[string]summaryStats `json:"stats"`
	Counters       map[string]int64        `json:"counters,omitempty"`
	Elapsed        string                  `json:"elapsed"`
}

func toBarItems(vals []int) []opts.BarData {
	out := make([]opts.BarData, len(vals))
	for i, v := range vals {
		out[i] = opts.BarData{Value: v}
	}
	return out
}

func newBarChart(title string, labels []string, counts []int, st summaryStats) *charts.Bar {
	bar := charts.NewBar()
	subtitle := fmt.Sprintf("n=%d mean=%.3f std=%.3f median=%.1f max|x|=%.0f",
		st.Count, st.Mean, st.Std, st.Median, st.MaxAbs)
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}, opts.DataZoom{Type: "slider"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("count", toBarItems(counts)).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))
	return bar
}

func exactChart(title string, values []float64) *charts.Bar {
	keys, counts := integerHistogram(values)
	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = fmt.Sprint(k)
	}
	return newBarChart(title, labels, counts, computeStats(values))
}

func bucketChart(title string, values []float64, nbins int) *charts.Bar {
	centers, counts := bucketHistogram(values, nbins)
	labels := make([]string, len(centers))
	for i, c := range centers {
		labels[i] = fmt.Sprintf("%.0f", c)
	}
	return newBarChart(title, labels, counts, computeStats(values))
}

func saveJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func appendPoly(vals []float64, p ntru.Poly) []float64 {
	for _, v := range p {
		vals = append(vals, float64(v))
	}
	return vals
}

func main() {
	cfg := flag.String("config", ntrurio.DefaultPath, "configuration file")
	set := flag.String("set", "", "parameter set name or hex OID (overrides the config)")
	runs := flag.Int("runs", 20, "number of key pairs")
	signs := flag.Int("signs", 10, "signatures per key pair")
	seed := flag.Int64("seed", 1, "PRNG seed for keys and messages")
	outDir := flag.String("out", "Measure_Reports", "output directory for reports")
	flag.Parse()
	measure.Enabled = true

	sys, err := ntrurio.LoadParamsSearch(*cfg, *set != "")
	if err != nil {
		log.Fatalf("load params: %v", err)
	}
	ps := sys.Set
	if *set != "" {
		if ps, err = ntru.ParamsByName(*set); err != nil {
			log.Fatalf("params: %v", err)
		}
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}

	var hCoeffs, sCoeffs, tCoeffs, attempts, trials []float64
	rng := ntru.NewRNG(*seed)
	start := time.Now()
	totalAttempts := 0
	for i := 0; i < *runs; i++ {
		sk, pk, used, err := ntru.GenerateKeyWithOpts(ps, ntru.KeygenOpts{MaxTrials: sys.MaxKeygenTrials, Rand: rng})
		if err != nil {
			log.Fatalf("run %d: keygen: %v", i, err)
		}
		trials = append(trials, float64(used))
		hCoeffs = appendPoly(hCoeffs, pk.H)
		for j := 0; j < *signs; j++ {
			msg := make([]byte, 64)
			_, _ = rng.Read(msg)
			sig, n, err := ntru.SignWithOpts(sk, pk, msg, ntru.SignOpts{MaxAttempts: sys.MaxSignAttempts})
			if err != nil {
				log.Fatalf("run %d sign %d: %v", i, j, err)
			}
			if !ntru.VerifySignature(pk, msg, sig) {
				log.Fatalf("run %d sign %d: signature rejected", i, j)
			}
			totalAttempts += n
			attempts = append(attempts, float64(n))
			sCoeffs = appendPoly(sCoeffs, sig.S)
			tCoeffs = appendPoly(tCoeffs, pk.ComputeT(sig.S))
		}
		sk.Destroy()
		log.Printf("[analysis] %s run %d/%d done", ps.Name, i+1, *runs)
	}

	rep := report{
		ParamSet:    ps.Name,
		Runs:        *runs,
		SignsPerKey: *signs,
		Stats: map[string]summaryStats{
			"h":             computeStats(hCoeffs),
			"s":             computeStats(sCoeffs),
			"t":             computeStats(tCoeffs),
			"sign_attempts": computeStats(attempts),
			"keygen_trials": computeStats(trials),
		},
		Counters: measureutil.SnapshotAndReset(),
		Elapsed:  time.Since(start).String(),
	}
	if totalAttempts > 0 {
		rep.AcceptanceRate = float64(len(attempts)) / float64(totalAttempts)
	}

	ts := time.Now().Format("20060102_150405")
	jsonPath := filepath.Join(*outDir, fmt.Sprintf("ntrumls_stats_%s_%s.json", ps.Name, ts))
	if err := saveJSON(jsonPath, rep); err != nil {
		log.Printf("warn: save stats: %v", err)
	}

	page := components.NewPage()
	page.AddCharts(
		bucketChart(fmt.Sprintf("h (public, q=%d)", ps.Q), hCoeffs, 128),
		bucketChart(fmt.Sprintf("s (signature, bound %d)", ps.NormBoundS), sCoeffs, 128),
		bucketChart(fmt.Sprintf("t = h*s (bound %d)", ps.NormBoundT), tCoeffs, 128),
		exactChart("signing attempts", attempts),
		exactChart("keygen trials", trials),
	)
	htmlPath := filepath.Join(*outDir, fmt.Sprintf("ntrumls_histograms_%s_%s.html", ps.Name, ts))
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		log.Fatalf("render html: %v", err)
	}
	if err := os.WriteFile(htmlPath, buf.Bytes(), 0o644); err != nil {
		log.Fatalf("write html: %v", err)
	}
	measureutil.WriteSnapshot(os.Stdout, ps.Name, rep.Counters)
	fmt.Printf("acceptance rate: %.4f\n", rep.AcceptanceRate)
	fmt.Println("Histogram page:", htmlPath)
	fmt.Println("Stats JSON:", jsonPath)
}
