package island

import (
	"path/filepath"

	"islandgen/internal/config"
)

// exampleFiles names the output file of each bundled preset.
var exampleFiles = map[string]string{
	"basic":       "basic_island.obj",
	"high-res":    "high_res_island.obj",
	"archipelago": "archipelago.obj",
	"custom":      "custom_island.obj",
}

// ExampleFile returns the output file name for a preset.
func ExampleFile(preset string) string {
	if name, ok := exampleFiles[preset]; ok {
		return name
	}
	return preset + ".obj"
}

// ExampleJobs returns one job per bundled preset, writing into dir.
func ExampleJobs(dir string) ([]Job, error) {
	names := config.PresetNames()
	jobs := make([]Job, 0, len(names))
	for _, name := range names {
		p, err := config.Preset(name)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, Job{
			Name:   name,
			Params: p,
			Output: filepath.Join(dir, ExampleFile(name)),
		})
	}
	return jobs, nil
}
