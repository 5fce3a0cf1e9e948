package logging

import "testing"

func TestNewProgressSamplerDefaults(t *testing.T) {
	for _, size := range []int{0, -1, 101} {
		if s := NewProgressSampler(size); s.bucket != 5 {
			t.Errorf("NewProgressSampler(%d).bucket = %d, want 5", size, s.bucket)
		}
	}
	if s := NewProgressSampler(10); s.bucket != 10 || s.lastBucket != -1 {
		t.Fatalf("unexpected sampler %+v", s)
	}
}

func TestProgressSamplerNil(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(1, 10, 100) {
		t.Fatal("nil sampler should always log")
	}
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(10)
	// 1000 frames read 75 at a time, the last read short.
	var logged []int
	for done := 75; ; done += 75 {
		done = min(done, 1000)
		if s.ShouldLog(1, done, 1000) {
			logged = append(logged, done)
		}
		if done == 1000 {
			break
		}
	}
	want := []int{75, 150, 225, 300, 450, 525, 600, 750, 825, 900, 1000}
	if len(logged) != len(want) {
		t.Fatalf("logged %v, want %v", logged, want)
	}
	for i := range want {
		if logged[i] != want[i] {
			t.Fatalf("logged %v, want %v", logged, want)
		}
	}
}

func TestProgressSamplerCompletionAlwaysLogs(t *testing.T) {
	s := NewProgressSampler(50)
	if !s.ShouldLog(1, 99, 100) {
		t.Fatal("first report should log")
	}
	if s.ShouldLog(1, 99, 100) {
		t.Fatal("repeated report should not log")
	}
	if !s.ShouldLog(1, 100, 100) {
		t.Fatal("completion should log")
	}
	if s.ShouldLog(1, 100, 100) {
		t.Fatal("completion should log once")
	}
}

func TestProgressSamplerNewTrackResets(t *testing.T) {
	s := NewProgressSampler(25)
	s.ShouldLog(1, 100, 100)
	if !s.ShouldLog(2, 1, 100) {
		t.Fatal("new track should log its first report")
	}
	if s.track != 2 {
		t.Fatalf("track = %d, want 2", s.track)
	}
}

func TestProgressSamplerEmptyTrack(t *testing.T) {
	s := NewProgressSampler(10)
	if s.ShouldLog(3, 0, 0) {
		t.Fatal("zero-length track has no progress to log")
	}
}
