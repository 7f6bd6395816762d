// latencygraph renders the latency snapshot files written by the suite
// (SDMX_CONFORMANCE_SNAPSHOT_FILE) as a bar chart, one group of bars per run,
// so latency of different targets or different days can be compared.
//
// Usage: latencygraph run1.json [run2.json ...]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

type Snapshot struct {
	Endpoint   string
	DurationMS int64
	BudgetMS   int64
}

type Output struct {
	Name      string
	Target    string
	Snapshots []Snapshot
}

type LatencyRun struct {
	Snapshots []Snapshot
	Name      string
}

func loadFile(filename string) (*LatencyRun, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	var s Output
	if err = json.NewDecoder(f).Decode(&s); err != nil {
		return nil, err
	}
	name := filename
	if s.Target != "" {
		name = s.Target
	}
	return &LatencyRun{
		Name:      name,
		Snapshots: s.Snapshots,
	}, nil
}

func generateLatencyGraph(runs []LatencyRun, names []string, filename string) {
	var groups []plotter.Values
	for _, r := range runs {
		var g plotter.Values
		for _, s := range r.Snapshots {
			g = append(g, float64(s.DurationMS))
		}
		groups = append(groups, g)
	}

	p := plot.New()
	p.Title.Text = "GET latency per endpoint"
	p.Y.Label.Text = "Round trip incl. body (ms)"

	w := vg.Points(20)
	offsets := make([]font.Length, len(groups))
	switch len(offsets) {
	case 1:
		offsets[0] = 0
	case 2:
		offsets[0] = -0.5 * w
		offsets[1] = 0.5 * w
	case 3:
		offsets[0] = -w
		offsets[1] = 0
		offsets[2] = w
	case 5:
		offsets[0] = -2 * w
		offsets[1] = -w
		offsets[2] = 0
		offsets[3] = w
		offsets[4] = 2 * w
	}

	for i := range groups {
		bars, err := plotter.NewBarChart(groups[i], w)
		if err != nil {
			panic(err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = offsets[i]
		p.Add(bars)
		p.Legend.Add(runs[i].Name, bars)
	}

	p.Legend.Top = true
	p.Legend.Left = true
	p.NominalX(names...)
	p.Add(plotter.NewGrid())

	if err := p.Save(font.Length(float64(len(runs))*float64(len(names))*3*float64(w)), 3*vg.Inch, filename); err != nil {
		panic(err)
	}
}

func main() {
	flag.Parse()
	args := flag.Args()
	runs := make([]LatencyRun, len(args))
	var names []string
	for i := range runs {
		lr, err := loadFile(args[i])
		if lr == nil {
			fmt.Printf("failed to load snapshot from file '%v' : %v\n", args[i], err)
			os.Exit(2)
		}
		// sanity check that the snapshots are for the same endpoints
		if names == nil {
			for _, s := range lr.Snapshots {
				names = append(names, s.Endpoint)
			}
		} else {
			for i := range lr.Snapshots {
				if lr.Snapshots[i].Endpoint != names[i] {
					fmt.Printf("snapshots are for different endpoints, cannot make graph: at pos %v  %v != %v", i, lr.Snapshots[i].Endpoint, names[i])
				}
			}
		}
		runs[i] = *lr
	}
	generateLatencyGraph(runs, names, "latency.svg")
	fmt.Println("Output to latency.svg")
}
