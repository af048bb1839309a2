package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"islandgen/internal/config"
	"islandgen/internal/export"
	"islandgen/internal/island"
	"islandgen/internal/preview"

	"github.com/xlab/closer"
)

const usage = `Usage: islandgen [command] [flags]

Commands:
  generate   generate an island and export it as OBJ (default)
  preview    print an ASCII map and land/water statistics
  examples   generate every bundled preset
  schema     print the JSON schema of the -config file

Run "islandgen <command> -h" for the flags of a command.
`

// staged tracks output paths whose temp files must go if the process is interrupted.
var staged struct {
	sync.Mutex
	paths []string
}

func stage(path string) {
	staged.Lock()
	staged.paths = append(staged.paths, path)
	staged.Unlock()
}

func cleanup() {
	staged.Lock()
	defer staged.Unlock()
	for _, p := range staged.paths {
		os.Remove(export.TempPath(p))
	}
}

func main() {
	closer.Bind(cleanup)
	closer.Checked(func() error {
		return run(os.Args[1:], os.Stdout)
	}, true)
}

func run(args []string, stdout io.Writer) error {
	cmd := "generate"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "generate":
		return generate(args, stdout)
	case "preview":
		return previewCmd(args, stdout)
	case "examples":
		return examples(args, stdout)
	case "schema":
		return schema(args, stdout)
	case "help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func parse(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		closer.Close()
	}
	return err
}

func generate(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	pf := newParamFlags(fs)
	output := fs.String("output", "island.obj", "output OBJ file")
	image := fs.String("preview-image", "", "also write a top-down preview image (.png, .bmp, .tiff)")
	quiet := fs.Bool("quiet", false, "suppress progress output")
	if err := parse(fs, args); err != nil {
		return err
	}
	p, err := pf.params()
	if err != nil {
		return err
	}

	opts := island.Options{Progress: stdout, Workers: pf.workers}
	if *quiet {
		opts.Progress = nil
	}

	stage(*output)
	res, err := island.Run(p, *output, opts)
	if err != nil {
		return err
	}

	if *image != "" {
		stage(*image)
		if err := writePreviewImage(*image, res); err != nil {
			return err
		}
	}
	if !*quiet {
		res.Summary(stdout)
	}
	return nil
}

func writePreviewImage(path string, res *island.Result) error {
	caption := fmt.Sprintf("seed %d  %dx%d  sea %.2f", res.Params.Seed, res.Params.Width, res.Params.Height, res.Params.SeaLevel)
	img, err := preview.Render(res.Field, res.Params.SeaLevel, preview.ImageOptions{Size: 512, Caption: caption})
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	return preview.WriteImage(path, img)
}

func previewCmd(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	pf := newParamFlags(fs)
	image := fs.String("image", "", "write a top-down preview image (.png, .bmp, .tiff)")
	if err := parse(fs, args); err != nil {
		return err
	}
	p, err := pf.params()
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Generating preview with seed %d...\n", p.Seed)
	res, err := island.Generate(p, island.Options{Workers: pf.workers})
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "\nTerrain Preview (ASCII):")
	fmt.Fprintln(stdout, preview.Legend)
	fmt.Fprintln(stdout)
	if err := preview.ASCII(stdout, res.Field, p.SeaLevel); err != nil {
		return err
	}
	fmt.Fprintln(stdout)
	if err := preview.Summarize(res.Field, p.SeaLevel).Write(stdout); err != nil {
		return err
	}

	if *image != "" {
		stage(*image)
		if err := writePreviewImage(*image, res); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\nPreview image: %s\n", *image)
	}

	fmt.Fprintln(stdout, "\nTo generate the full OBJ file, run:")
	fmt.Fprintf(stdout, "  islandgen generate -seed %d -width %d -height %d -sea-level %g\n", p.Seed, p.Width, p.Height, p.SeaLevel)
	return nil
}

func examples(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("examples", flag.ContinueOnError)
	dir := fs.String("dir", "examples", "output directory")
	jobs := fs.Int("jobs", runtime.NumCPU(), "presets generated concurrently")
	if err := parse(fs, args); err != nil {
		return err
	}

	list, err := island.ExampleJobs(*dir)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Island Generator Examples")
	fmt.Fprintf(stdout, "Output files will be saved in the '%s' directory.\n\n", *dir)
	for _, j := range list {
		stage(j.Output)
	}

	results, err := island.RunAll(list, *jobs, island.Options{Progress: stdout})
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "\nAll examples complete!")
	fmt.Fprintln(stdout, "\nGenerated files:")
	for _, r := range results {
		fmt.Fprintf(stdout, "- %s (%s)\n", r.Result.Output, r.Result.Timings.TopN(1))
	}
	fmt.Fprintln(stdout, "\nYou can open these .obj files in Blender, MeshLab, or any 3D viewer.")
	return nil
}

func schema(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	out := fs.String("out", "", "write the schema to a file instead of stdout")
	if err := parse(fs, args); err != nil {
		return err
	}

	data, err := config.SchemaJSON()
	if err != nil {
		return err
	}
	if *out == "" {
		_, err := stdout.Write(data)
		return err
	}
	stage(*out)
	return export.Atomic(*out, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
