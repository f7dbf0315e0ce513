package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"bkap/internal/sentinel"
)

func TestParallelTalliesOutcomes(t *testing.T) {
	tally := Parallel(9, func(i int) error {
		switch i % 3 {
		case 0:
			return nil
		case 1:
			return fmt.Errorf("option %d: %w", i, sentinel.ErrNotFound)
		}
		return errors.New("boom")
	})

	assert.Equal(t, Tally{Successes: 3, Failures: 3, Missing: 3}, tally)
	assert.Equal(t, 9, tally.Total())
}

func TestParallelZero(t *testing.T) {
	assert.Equal(t, Tally{}, Parallel(0, func(int) error { return nil }))
}
