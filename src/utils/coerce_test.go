package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseExamNumber(t *testing.T) {
	// JSON numbers decode as float64
	n, err := ParseExamNumber(float64(2))
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = ParseExamNumber("3")
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = ParseExamNumber(" 1 ")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = ParseExamNumber("two")
	assert.Error(t, err)

	_, err = ParseExamNumber(nil)
	assert.Error(t, err)

	_, err = ParseExamNumber(true)
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-02")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2025-06-02T10:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = ParseDate("02/06/2025")
	assert.Error(t, err)
}
