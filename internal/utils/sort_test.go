package utils

import (
	"slices"
	"testing"
)

func TestGetSortedKeys(t *testing.T) {
	m := map[string]int{
		"HLS.S30.T11SKD.2022286T184329.v2.0": 1,
		"HLS.L30.T10SFJ.2022239T184919.v2.0": 2,
		"HLS.S30.T10SFJ.2022314T185621.v2.0": 3,
	}

	got := GetSortedKeys(m)
	want := []string{
		"HLS.L30.T10SFJ.2022239T184919.v2.0",
		"HLS.S30.T10SFJ.2022314T185621.v2.0",
		"HLS.S30.T11SKD.2022286T184329.v2.0",
	}
	if !slices.Equal(got, want) {
		t.Errorf("GetSortedKeys = %v, want %v", got, want)
	}
}
