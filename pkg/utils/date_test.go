package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUpstreamDate(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "valid date", input: "2024-06-07", expected: "07/06/2024"},
		{name: "wrong order", input: "07-06-2024", wantErr: true},
		{name: "not a calendar date", input: "2024-02-30", wantErr: true},
		{name: "garbage", input: "yesterday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToUpstreamDate(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestUpstreamDateToISO(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "valid date", input: "07.06.2024", expected: "2024-06-07"},
		{name: "non-numeric parts", input: "ab.cd.efgh", wantErr: true},
		{name: "wrong segment count", input: "07.06", wantErr: true},
		{name: "iso passed instead", input: "2024-06-07", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := UpstreamDateToISO(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	iso := "2023-12-31"
	upstream, err := ToUpstreamDate(iso)
	require.NoError(t, err)
	assert.Equal(t, "31/12/2023", upstream)

	back, err := UpstreamDateToISO("31.12.2023")
	require.NoError(t, err)
	assert.Equal(t, iso, back)
}
