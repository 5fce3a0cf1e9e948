package msf

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		tc   Timecode
		want Frame
	}{
		{"lead-in boundary", Timecode{0, 2, 0}, 0},
		{"origin", Timecode{0, 0, 0}, -Offset},
		{"one second in", Timecode{0, 3, 0}, 75},
		{"frames only", Timecode{0, 2, 74}, 74},
		{"minutes", Timecode{10, 0, 0}, 10*60*75 - Offset},
		{"typical lead-out", Timecode{58, 17, 41}, (58*60+17)*75 + 41 - Offset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.tc); got != tt.want {
				t.Fatalf("Decode(%v) = %d, want %d", tt.tc, got, tt.want)
			}
		})
	}
}

func TestAdvanceCarries(t *testing.T) {
	tests := []struct {
		name  string
		start Timecode
		n     int
		want  Timecode
	}{
		{"no carry", Timecode{0, 2, 10}, 5, Timecode{0, 2, 15}},
		{"exact second", Timecode{0, 2, 0}, 75, Timecode{0, 3, 0}},
		{"frame carry", Timecode{0, 2, 70}, 10, Timecode{0, 3, 5}},
		{"minute carry", Timecode{0, 59, 74}, 1, Timecode{1, 0, 0}},
		{"multiple seconds", Timecode{0, 2, 0}, 75 * 5, Timecode{0, 7, 0}},
		{"multiple minutes", Timecode{1, 30, 0}, 75 * 60 * 3, Timecode{4, 30, 0}},
		{"zero", Timecode{3, 4, 5}, 0, Timecode{3, 4, 5}},
		{"unbounded minutes", Timecode{99, 59, 74}, 1, Timecode{100, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advance(tt.start, tt.n)
			if got != tt.want {
				t.Fatalf("Advance(%v, %d) = %v, want %v", tt.start, tt.n, got, tt.want)
			}
			if !got.Valid() {
				t.Fatalf("Advance produced invalid timecode %v", got)
			}
		})
	}
}

func TestAdvanceClampsBeforeOrigin(t *testing.T) {
	if got := Advance(Timecode{0, 0, 5}, -10); got != (Timecode{}) {
		t.Fatalf("expected clamp to origin, got %v", got)
	}
}

func TestRoundTrip(t *testing.T) {
	for m := 0; m < 80; m += 7 {
		for s := 0; s < SecondsPerMinute; s++ {
			for f := 0; f < FramesPerSecond; f += 4 {
				tc := Timecode{m, s, f}
				want := Decode(tc)
				rebuilt := Advance(Timecode{}, int(want)+Offset)
				if rebuilt != tc {
					t.Fatalf("rebuilt %v from %d, want %v", rebuilt, want, tc)
				}
				if got := Decode(rebuilt); got != want {
					t.Fatalf("round trip of %v: got %d want %d", tc, got, want)
				}
				if FromFrame(want) != tc {
					t.Fatalf("FromFrame(%d) = %v, want %v", want, FromFrame(want), tc)
				}
			}
		}
	}
}

func TestAdvanceIsAdditive(t *testing.T) {
	starts := []Timecode{{0, 2, 0}, {0, 59, 74}, {12, 34, 56}}
	steps := []int{0, 1, 74, 75, 76, 4499, 4500, 100000}
	for _, start := range starts {
		for _, n1 := range steps {
			for _, n2 := range steps {
				twice := Advance(Advance(start, n1), n2)
				once := Advance(start, n1+n2)
				if twice != once {
					t.Fatalf("Advance(%v) by %d then %d = %v, by %d = %v", start, n1, n2, twice, n1+n2, once)
				}
			}
		}
	}
}

func TestTimecodeString(t *testing.T) {
	if got := (Timecode{3, 7, 9}).String(); got != "03:07:09" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestFrameBytes(t *testing.T) {
	if got := Frame(75).Bytes(); got != 176400 {
		t.Fatalf("one second of audio should be 176400 bytes, got %d", got)
	}
}
