package alphabet

import "testing"

func TestLetterToIndex(t *testing.T) {
	tests := []struct {
		in    rune
		want  int
		want2 bool
	}{
		{'a', 0, true},
		{'A', 0, true},
		{'z', 25, true},
		{'Q', 16, true},
		{' ', 0, false},
		{'1', 0, false},
		{'é', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, ok := LetterToIndex(tt.in)
			if got != tt.want || ok != tt.want2 {
				t.Errorf("LetterToIndex(%q) = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.want2)
			}
		})
	}
}

func TestIndexToLetterWraps(t *testing.T) {
	if got := IndexToLetter(27, false); got != 'b' {
		t.Errorf("IndexToLetter(27) = %q, want 'b'", got)
	}
	if got := IndexToLetter(-1, true); got != 'Z' {
		t.Errorf("IndexToLetter(-1) = %q, want 'Z'", got)
	}
}

func TestMod(t *testing.T) {
	tests := []struct{ x, m, want int }{
		{5, 26, 5},
		{-3, 26, 23},
		{-26, 26, 0},
		{52, 26, 0},
	}
	for _, tt := range tests {
		if got := Mod(tt.x, tt.m); got != tt.want {
			t.Errorf("Mod(%d, %d) = %d, want %d", tt.x, tt.m, got, tt.want)
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	stream := Encode("Hi, There!")
	if got := Decode(stream); got != "hithere" {
		t.Errorf("Decode(Encode()) = %q, want %q", got, "hithere")
	}
}

func TestApplyIndexFunction(t *testing.T) {
	got := ApplyIndexFunction([]int{0, 1, 25}, func(pos, i int) int { return i - 3 })
	want := []int{23, 24, 22}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ApplyIndexFunction = %v, want %v", got, want)
		}
	}

	got = ApplyIndexFunction([]int{0, 0, 0}, func(pos, i int) int { return i + pos })
	if got[2] != 2 {
		t.Errorf("position not passed through, got %v", got)
	}
}
