package island

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"islandgen/internal/config"
	"islandgen/internal/export"
)

func smallParams(seed int64) config.Parameters {
	p := config.Default()
	p.Width, p.Height = 10, 10
	p.Seed = seed
	return p
}

func TestRunRoundTrip(t *testing.T) {
	var progress bytes.Buffer
	path := filepath.Join(t.TempDir(), "island.obj")
	res, err := Run(smallParams(42), path, Options{Progress: &progress})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Mesh.VertexCount() != 200 || res.Mesh.FaceCount() != 324 {
		t.Errorf("got %d vertices / %d faces", res.Mesh.VertexCount(), res.Mesh.FaceCount())
	}
	if res.Output != path {
		t.Errorf("Output = %q, want %q", res.Output, path)
	}
	for _, want := range []string{
		"Generating terrain with dimensions 10x10...",
		"Mesh created: 200 vertices, 324 faces",
		"Export complete: " + path,
	} {
		if !strings.Contains(progress.String(), want) {
			t.Errorf("progress missing %q:\n%s", want, progress.String())
		}
	}
	for _, stage := range []string{"terrain.Generate", "terrain.Normalize", "meshing.Build", "export.WriteFile"} {
		if _, ok := res.Timings.Snapshot()[stage]; !ok {
			t.Errorf("stage %s not timed", stage)
		}
	}

	var summary bytes.Buffer
	res.Summary(&summary)
	if !strings.Contains(summary.String(), "- Output: "+path) {
		t.Errorf("summary missing output path:\n%s", summary.String())
	}
}

// TestRunDeterministic verifies identical parameters write identical bytes
func TestRunDeterministic(t *testing.T) {
	dir := t.TempDir()
	p := smallParams(7)
	p.Width, p.Height = 33, 21
	a, b := filepath.Join(dir, "a.obj"), filepath.Join(dir, "b.obj")
	if _, err := Run(p, a, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := Run(p, b, Options{Workers: 4}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	da, _ := os.ReadFile(a)
	db, _ := os.ReadFile(b)
	if len(da) == 0 || !bytes.Equal(da, db) {
		t.Errorf("Expected identical output files")
	}
}

func TestRunInvalidParameters(t *testing.T) {
	p := smallParams(1)
	p.Octaves = 0
	path := filepath.Join(t.TempDir(), "island.obj")
	_, err := Run(p, path, Options{})
	if !errors.Is(err, config.ErrInvalidParameters) {
		t.Fatalf("Expected ErrInvalidParameters, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected no output file for invalid parameters")
	}
}

func TestRunUnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	res, err := Run(smallParams(1), filepath.Join(blocker, "island.obj"), Options{})
	if !errors.Is(err, export.ErrWrite) {
		t.Fatalf("Expected ErrWrite, got %v", err)
	}
	if res == nil || res.Output != "" {
		t.Errorf("Expected in-memory result without output path")
	}
}

func TestGenerateNormalizes(t *testing.T) {
	res, err := Generate(smallParams(3), Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Degenerate {
		t.Fatalf("unexpected degenerate field")
	}
	lo, hi := res.Field.Range()
	if lo != 0 || hi != 1 {
		t.Errorf("Expected range [0,1], got [%f,%f]", lo, hi)
	}
}

func TestRunAll(t *testing.T) {
	dir := t.TempDir()
	var jobs []Job
	for i, name := range []string{"one", "two", "three", "four", "five"} {
		p := smallParams(int64(i))
		p.Width = 12 + i
		jobs = append(jobs, Job{Name: name, Params: p, Output: filepath.Join(dir, name+".obj")})
	}
	var progress bytes.Buffer
	results, err := RunAll(jobs, 3, Options{Progress: &progress})
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("got %d results, want %d", len(results), len(jobs))
	}
	for i, r := range results {
		if r.Name != jobs[i].Name || r.Err != nil {
			t.Errorf("result %d: %+v", i, r)
			continue
		}
		w := jobs[i].Params.Width
		if got, want := r.Result.Mesh.VertexCount(), 2*w*10; got != want {
			t.Errorf("%s: got %d vertices, want %d", r.Name, got, want)
		}
		if _, err := os.Stat(jobs[i].Output); err != nil {
			t.Errorf("%s: %v", r.Name, err)
		}
	}
	for _, line := range strings.Split(strings.TrimSpace(progress.String()), "\n") {
		if !strings.HasPrefix(line, "[") {
			t.Errorf("progress line without job prefix: %q", line)
		}
	}
}

func TestRunAllReportsFailure(t *testing.T) {
	bad := smallParams(1)
	bad.Width = 1
	jobs := []Job{
		{Name: "good", Params: smallParams(1), Output: filepath.Join(t.TempDir(), "good.obj")},
		{Name: "bad", Params: bad, Output: filepath.Join(t.TempDir(), "bad.obj")},
	}
	results, err := RunAll(jobs, 2, Options{})
	if !errors.Is(err, config.ErrInvalidParameters) {
		t.Fatalf("Expected ErrInvalidParameters, got %v", err)
	}
	if results[0].Err != nil || results[1].Err == nil {
		t.Errorf("unexpected per-job errors: %v / %v", results[0].Err, results[1].Err)
	}
}

func TestExampleJobs(t *testing.T) {
	jobs, err := ExampleJobs("out")
	if err != nil {
		t.Fatalf("ExampleJobs: %v", err)
	}
	want := map[string]string{
		"basic":       filepath.Join("out", "basic_island.obj"),
		"high-res":    filepath.Join("out", "high_res_island.obj"),
		"archipelago": filepath.Join("out", "archipelago.obj"),
		"custom":      filepath.Join("out", "custom_island.obj"),
	}
	if len(jobs) != len(want) {
		t.Fatalf("got %d jobs, want %d", len(jobs), len(want))
	}
	for _, j := range jobs {
		if want[j.Name] != j.Output {
			t.Errorf("%s: output %q, want %q", j.Name, j.Output, want[j.Name])
		}
		if err := j.Params.Validate(); err != nil {
			t.Errorf("%s: %v", j.Name, err)
		}
	}
}

func TestWorkerPoolSubmit(t *testing.T) {
	pool := NewWorkerPool(1, 4, Options{})
	results := make(chan JobResult, 2)
	dir := t.TempDir()
	for _, name := range []string{"a", "b"} {
		job := Job{Name: name, Params: smallParams(2), Output: filepath.Join(dir, name+".obj"), ResultChan: results}
		if !pool.SubmitJob(job) {
			t.Fatalf("queue rejected job %s", name)
		}
	}
	if n := pool.QueueLength(); n > 2 {
		t.Errorf("queue length %d exceeds submitted jobs", n)
	}
	pool.Shutdown()
	close(results)

	got := 0
	for r := range results {
		if r.Err != nil {
			t.Errorf("%s: %v", r.Name, r.Err)
		}
		got++
	}
	if got != 2 {
		t.Errorf("got %d results, want 2", got)
	}
}

func TestWorkerPoolCancel(t *testing.T) {
	pool := NewWorkerPool(1, 1, Options{})
	pool.Cancel()
	job := Job{Name: "late", Params: smallParams(1), Output: filepath.Join(t.TempDir(), "late.obj")}
	// A full queue plus a cancelled pool must not block.
	pool.SubmitJob(job)
	if pool.SubmitJobBlocking(job) {
		t.Logf("job queued before cancellation was observed")
	}
	pool.Shutdown()
}

func TestWorkerPoolRejectsAfterShutdown(t *testing.T) {
	pool := NewWorkerPool(1, 2, Options{})
	pool.Shutdown()

	job := Job{Name: "after", Params: smallParams(1), Output: filepath.Join(t.TempDir(), "after.obj")}
	if pool.SubmitJob(job) {
		t.Errorf("SubmitJob accepted a job after Shutdown")
	}
	if pool.SubmitJobBlocking(job) {
		t.Errorf("SubmitJobBlocking accepted a job after Shutdown")
	}
	pool.Shutdown()
	if _, err := os.Stat(job.Output); !os.IsNotExist(err) {
		t.Errorf("rejected job produced output")
	}
}
