package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetRMDAge(t *testing.T) {
	tests := []struct {
		birthYear int
		want      int
	}{
		{1945, 72},
		{1950, 72},
		{1951, 73},
		{1959, 73},
		{1960, 75},
		{1990, 75},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetRMDAge(tt.birthYear), "birth year %d", tt.birthYear)
	}

	assert.False(t, IsRMDAge(72, 1955))
	assert.True(t, IsRMDAge(73, 1955))
	assert.False(t, IsRMDAge(74, 1965))
	assert.True(t, IsRMDAge(75, 1965))
}

func TestBirthYear(t *testing.T) {
	asOf := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1996, BirthYear(30, asOf))
	assert.Equal(t, 1961, BirthYear(65, asOf))
}
