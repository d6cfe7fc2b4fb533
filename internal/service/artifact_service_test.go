package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldMastery(t *testing.T) {
	t.Run("first attempt takes the score directly", func(t *testing.T) {
		assert.InDelta(t, 80.0, foldMastery(0, 0, 80), 0.001)
	})

	t.Run("later attempts average in", func(t *testing.T) {
		// 80 after one attempt, then a 60: (80*1 + 60) / 2 = 70
		assert.InDelta(t, 70.0, foldMastery(80, 1, 60), 0.001)
	})

	t.Run("long history dampens a single outlier", func(t *testing.T) {
		got := foldMastery(90, 9, 0)
		assert.InDelta(t, 81.0, got, 0.001)
	})
}
