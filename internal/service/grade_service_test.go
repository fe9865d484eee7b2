package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPercentage(t *testing.T) {
	svc := NewGradeService()

	pct, err := svc.Percentage(7, 8)
	require.NoError(t, err)
	require.Equal(t, 87.5, pct)

	pct, err = svc.Percentage(0, 8)
	require.NoError(t, err)
	require.Equal(t, 0.0, pct)

	_, err = svc.Percentage(9, 8)
	require.Error(t, err)
	_, err = svc.Percentage(1, 0)
	require.Error(t, err)
}

func TestLetter(t *testing.T) {
	svc := NewGradeService()

	cases := map[float64]string{
		95:   "A",
		90:   "A",
		85:   "B",
		72.5: "C",
		60:   "D",
		10:   "F",
	}
	for pct, want := range cases {
		require.Equal(t, want, svc.Letter(pct), "percentage %.1f", pct)
	}
}
