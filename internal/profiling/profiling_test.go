package profiling

import (
	"sync"
	"testing"
	"time"
)

func TestRecorderAccumulates(t *testing.T) {
	r := New()
	r.Add("mesh", 2*time.Millisecond)
	r.Add("noise", 5*time.Millisecond)
	r.Add("mesh", 1500*time.Microsecond)

	snap := r.Snapshot()
	if snap["mesh"] != 3500*time.Microsecond || snap["noise"] != 5*time.Millisecond {
		t.Fatalf("unexpected totals %v", snap)
	}
	if got := r.TopN(5); got != "noise:5ms, mesh:3.5ms" {
		t.Errorf("TopN = %q", got)
	}
	if got := r.TopN(1); got != "noise:5ms" {
		t.Errorf("TopN(1) = %q", got)
	}
	stages := r.Stages()
	if len(stages) != 2 || stages[0] != "mesh" || stages[1] != "noise" {
		t.Errorf("unexpected stage order %v", stages)
	}
	if r.Total() != 8500*time.Microsecond {
		t.Errorf("unexpected total %v", r.Total())
	}

	r.Reset()
	if len(r.Snapshot()) != 0 || len(r.Stages()) != 0 {
		t.Errorf("Expected empty recorder after Reset")
	}
}

func TestTrackConcurrent(t *testing.T) {
	var r Recorder
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stop := r.Track("worker")
			time.Sleep(time.Millisecond)
			stop()
		}()
	}
	wg.Wait()
	if d := r.Snapshot()["worker"]; d < 8*time.Millisecond {
		t.Errorf("Expected at least 8ms tracked, got %v", d)
	}
}

func TestNilRecorderTrack(t *testing.T) {
	var r *Recorder
	r.Track("ignored")()
}

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		0:                          "0ms",
		12 * time.Millisecond:      "12ms",
		1250 * time.Microsecond:    "1.2ms",
		2 * time.Second:            "2000ms",
		1290 * time.Microsecond:    "1.2ms",
		99 * time.Microsecond:      "0ms",
		1234567 * time.Millisecond: "1234567ms",
	}
	for d, want := range cases {
		if got := FormatDuration(d); got != want {
			t.Errorf("FormatDuration(%v) = %q, want %q", d, got, want)
		}
	}
}
