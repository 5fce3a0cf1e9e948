package logging

// ProgressSampler thins per-chunk extraction progress to one line per bucket
// of completion. A sampler follows one track at a time; seeing a different
// track number starts over.
type ProgressSampler struct {
	bucket     int
	track      int
	lastBucket int
}

// NewProgressSampler returns a sampler that emits each time a track crosses
// into the next bucketPercent slice of completion (default 5).
func NewProgressSampler(bucketPercent int) *ProgressSampler {
	if bucketPercent <= 0 || bucketPercent > 100 {
		bucketPercent = 5
	}
	return &ProgressSampler{bucket: bucketPercent, lastBucket: -1}
}

// ShouldLog reports whether done of total frames for track is worth a log
// line. The first report for a track and the report that completes it always
// log. A nil sampler logs everything.
func (s *ProgressSampler) ShouldLog(track, done, total int) bool {
	if s == nil {
		return true
	}
	if track != s.track {
		s.track = track
		s.lastBucket = -1
	}
	if total <= 0 {
		return false
	}
	done = min(max(done, 0), total)
	bucket := done * 100 / total / s.bucket
	if done == total {
		bucket = 100/s.bucket + 1
	}
	if bucket <= s.lastBucket {
		return false
	}
	s.lastBucket = bucket
	return true
}
