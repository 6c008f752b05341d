package textfmt

import "sort"

// FillerRecord lists the stream positions that hold synthetic filler letters.
// Positions are relative to the stream after every insertion.
type FillerRecord struct {
	Positions []int
	Filler    int
}

// Len returns the number of recorded fillers
func (r FillerRecord) Len() int {
	return len(r.Positions)
}

// contains reports whether pos holds a filler. Positions are ascending.
func (r FillerRecord) contains(pos int) bool {
	i := sort.SearchInts(r.Positions, pos)
	return i < len(r.Positions) && r.Positions[i] == pos
}

// Merge combines two records over the same final stream
func (r FillerRecord) Merge(o FillerRecord) FillerRecord {
	positions := make([]int, 0, len(r.Positions)+len(o.Positions))
	positions = append(positions, r.Positions...)
	positions = append(positions, o.Positions...)
	sort.Ints(positions)
	return FillerRecord{Positions: positions, Filler: r.Filler}
}

// PaddingLength returns how many letters pad n up to a multiple of chunk
func PaddingLength(n, chunk int) int {
	if chunk <= 0 {
		return 0
	}
	return (chunk - n%chunk) % chunk
}

// InsertBlockPadding appends filler until len(stream) is a multiple of chunk
func InsertBlockPadding(stream []int, chunk, filler int) ([]int, FillerRecord) {
	pad := PaddingLength(len(stream), chunk)
	out := make([]int, len(stream), len(stream)+pad)
	copy(out, stream)

	rec := FillerRecord{Filler: filler}
	for i := 0; i < pad; i++ {
		rec.Positions = append(rec.Positions, len(out))
		out = append(out, filler)
	}
	return out, rec
}

// BreakDigraphDuplicates walks the stream two letters at a time and, whenever
// both letters of a digraph are equal, inserts filler after the first one.
// The insertion shifts the alignment of every following digraph by one.
func BreakDigraphDuplicates(stream []int, filler int) ([]int, FillerRecord) {
	out := make([]int, 0, len(stream)+len(stream)/2)
	rec := FillerRecord{Filler: filler}
	for _, x := range stream {
		if len(out)%2 == 1 && out[len(out)-1] == x {
			rec.Positions = append(rec.Positions, len(out))
			out = append(out, filler)
		}
		out = append(out, x)
	}
	return out, rec
}

// StripFillers removes the recorded positions from stream
func StripFillers(stream []int, rec FillerRecord) []int {
	out := make([]int, 0, len(stream))
	for i, x := range stream {
		if !rec.contains(i) {
			out = append(out, x)
		}
	}
	return out
}

// DetectBlockPadding reconstructs the record of InsertBlockPadding from a
// decrypted stream: the trailing run of filler letters, at most chunk-1 long.
// A plaintext that really ended in the filler letter is over-stripped.
func DetectBlockPadding(stream []int, chunk, filler int) FillerRecord {
	rec := FillerRecord{Filler: filler}
	if chunk <= 1 || len(stream)%chunk != 0 {
		return rec
	}
	for i := len(stream) - 1; i >= 0 && len(stream)-i < chunk && stream[i] == filler; i-- {
		rec.Positions = append([]int{i}, rec.Positions...)
	}
	return rec
}

// DetectDigraphFillers reconstructs the record of BreakDigraphDuplicates
// followed by two-letter block padding. A candidate is a filler in the second
// half of a digraph whose neighbours are equal, or a trailing filler. The
// candidate record is only returned if replaying the insertion on the
// stripped stream reproduces stream exactly.
func DetectDigraphFillers(stream []int, filler int) FillerRecord {
	rec := FillerRecord{Filler: filler}
	if len(stream) == 0 || len(stream)%2 != 0 {
		return rec
	}

	for i := 1; i+1 < len(stream); i += 2 {
		if stream[i] == filler && stream[i-1] == stream[i+1] {
			rec.Positions = append(rec.Positions, i)
		}
	}
	last := len(stream) - 1
	if stream[last] == filler {
		rec.Positions = append(rec.Positions, last)
	}
	if rec.Len() == 0 {
		return rec
	}

	replayed, _ := BreakDigraphDuplicates(StripFillers(stream, rec), filler)
	replayed, _ = InsertBlockPadding(replayed, 2, filler)
	if !equalStreams(replayed, stream) {
		return FillerRecord{Filler: filler}
	}
	return rec
}

func equalStreams(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
