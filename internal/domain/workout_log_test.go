package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReps(t *testing.T) {
	tests := []struct {
		in   string
		want Reps
		ok   bool
	}{
		{in: "5", want: Reps{5}, ok: true},
		{in: "5,5,4", want: Reps{5, 5, 4}, ok: true},
		{in: "0,12", want: Reps{0, 12}, ok: true},
		{in: ""},
		{in: "5, 5"},
		{in: " 5"},
		{in: "5,,5"},
		{in: "5,"},
		{in: "-1"},
		{in: "+3"},
		{in: "05"},
		{in: "five"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseReps(tt.in)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidReps)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestRepsJSON(t *testing.T) {
	raw, err := json.Marshal(Reps{8, 8, 6})
	require.NoError(t, err)
	assert.Equal(t, `"8,8,6"`, string(raw))

	var reps Reps
	require.NoError(t, json.Unmarshal([]byte(`"3,2"`), &reps))
	assert.Equal(t, Reps{3, 2}, reps)

	assert.ErrorIs(t, json.Unmarshal([]byte(`[3,2]`), &reps), ErrInvalidReps)
}

func TestKinds(t *testing.T) {
	assert.True(t, ProgramCustom.Valid())
	assert.False(t, ProgramKind("shared").Valid())
	assert.True(t, MediaVideo.Valid())
	assert.False(t, MediaKind("audio").Valid())
	assert.True(t, MealSnack.Valid())
	assert.False(t, Meal("snack").Valid())
}
