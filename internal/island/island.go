package island

import (
	"fmt"
	"io"

	"islandgen/internal/config"
	"islandgen/internal/export"
	"islandgen/internal/meshing"
	"islandgen/internal/profiling"
	"islandgen/internal/terrain"
)

// Options controls a generation run. The zero value is silent and sequential.
type Options struct {
	// Progress receives human-readable status lines. Nil discards them.
	Progress io.Writer
	// Workers is the number of goroutines sampling noise rows.
	Workers int
	// Recorder collects stage timings. Nil allocates a fresh one per run.
	Recorder *profiling.Recorder
}

// Result is everything one run produced.
type Result struct {
	Params config.Parameters
	// Field is the normalized height field.
	Field *terrain.HeightField
	// Degenerate is set when the raw field was flat and left unnormalized.
	Degenerate bool
	Mesh       *meshing.Mesh
	Timings    *profiling.Recorder
	// Output is the written file path, empty when nothing was exported.
	Output string
}

func (o Options) progress() io.Writer {
	if o.Progress == nil {
		return io.Discard
	}
	return o.Progress
}

func (o Options) recorder() *profiling.Recorder {
	if o.Recorder == nil {
		return profiling.New()
	}
	return o.Recorder
}

// Generate runs the in-memory pipeline: validate, sample, normalize, mesh.
// Invalid parameters fail before any noise is sampled.
func Generate(p config.Parameters, opts Options) (*Result, error) {
	g, err := terrain.NewGenerator(p)
	if err != nil {
		return nil, fmt.Errorf("generate island: %w", err)
	}
	g.WithWorkers(opts.Workers)

	out := opts.progress()
	rec := opts.recorder()
	res := &Result{Params: p, Timings: rec}

	fmt.Fprintf(out, "Generating terrain with dimensions %dx%d...\n", p.Width, p.Height)
	stop := rec.Track("terrain.Generate")
	field := g.Generate()
	stop()

	stop = rec.Track("terrain.Normalize")
	res.Degenerate = !field.Normalize()
	stop()
	res.Field = field

	lo, hi := field.Range()
	if res.Degenerate {
		fmt.Fprintf(out, "Terrain is flat (%.3f), left unnormalized\n", lo)
	}
	fmt.Fprintf(out, "Terrain generated. Min: %.3f, Max: %.3f\n", lo, hi)

	fmt.Fprintln(out, "Creating 3D mesh...")
	stop = rec.Track("meshing.Build")
	res.Mesh = meshing.Build(field, meshing.OptionsFrom(p))
	stop()
	fmt.Fprintf(out, "Mesh created: %d vertices, %d faces\n", res.Mesh.VertexCount(), res.Mesh.FaceCount())

	return res, nil
}

// Run generates the island and exports it to path.
func Run(p config.Parameters, path string, opts Options) (*Result, error) {
	res, err := Generate(p, opts)
	if err != nil {
		return nil, err
	}

	out := opts.progress()
	fmt.Fprintf(out, "Exporting to %s...\n", path)
	stop := res.Timings.Track("export.WriteFile")
	err = export.WriteFile(path, res.Mesh)
	stop()
	if err != nil {
		return res, fmt.Errorf("export island: %w", err)
	}
	res.Output = path
	fmt.Fprintf(out, "Export complete: %s\n", path)
	return res, nil
}

// Summary prints the closing report of a run.
func (r *Result) Summary(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Island generation complete!")
	fmt.Fprintf(w, "- Resolution: %dx%d\n", r.Params.Width, r.Params.Height)
	fmt.Fprintf(w, "- Sea level: %g\n", r.Params.SeaLevel)
	fmt.Fprintf(w, "- Sea depth: %g\n", r.Params.SeaDepth)
	fmt.Fprintf(w, "- Noise: %s (seed %d)\n", r.Params.NoiseKernel(), r.Params.Seed)
	if r.Output != "" {
		fmt.Fprintf(w, "- Output: %s\n", r.Output)
	}
	fmt.Fprintf(w, "- Timings: %s\n", r.Timings.TopN(4))
}
