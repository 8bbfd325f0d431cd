package s2_factors

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSMA(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		window int
		want   float64
	}{
		{"full window", []float64{1, 2, 3, 4, 5}, 5, 3},
		{"partial window", []float64{1, 2, 3, 4, 5, 6}, 3, 5},
		{"single", []float64{7}, 1, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SMA(tt.values, tt.window)
			if !almostEqual(got, tt.want) {
				t.Errorf("SMA() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSMAInsufficientData(t *testing.T) {
	if got := SMA([]float64{1, 2}, 3); !math.IsNaN(got) {
		t.Errorf("SMA() = %v, want NaN for short series", got)
	}
	if got := SMA([]float64{1, math.NaN(), 3}, 3); !math.IsNaN(got) {
		t.Errorf("SMA() = %v, want NaN when window contains gaps", got)
	}
}

func TestTrailingReturn(t *testing.T) {
	closes := []float64{100, 101, 102, 103, 104, 105, 106, 110}

	// 7일 전 100 → 현재 110
	got := TrailingReturn(closes, 7)
	if !almostEqual(got, 0.10) {
		t.Errorf("TrailingReturn() = %v, want 0.10", got)
	}

	if got := TrailingReturn(closes[:5], 7); !math.IsNaN(got) {
		t.Errorf("TrailingReturn() = %v, want NaN for short series", got)
	}
}

func TestZScores(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	got := ZScores(values)

	// 평균 3, 모표준편차 sqrt(2)
	want := []float64{-math.Sqrt2, -math.Sqrt2 / 2, 0, math.Sqrt2 / 2, math.Sqrt2}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("ZScores()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestZScoresSkipsNaN(t *testing.T) {
	values := []float64{1, math.NaN(), 3}
	got := ZScores(values)

	if !math.IsNaN(got[1]) {
		t.Error("NaN input must stay NaN")
	}
	// 평균 2, 모표준편차 1
	if !almostEqual(got[0], -1) || !almostEqual(got[2], 1) {
		t.Errorf("ZScores() = %v, want [-1, NaN, 1]", got)
	}
}

func TestZScoresDegenerateCrossSection(t *testing.T) {
	got := ZScores([]float64{2, 2, 2})
	for i, v := range got {
		if !math.IsNaN(v) {
			t.Errorf("ZScores()[%d] = %v, want NaN for zero dispersion", i, v)
		}
	}
}

func TestPercentileRanks(t *testing.T) {
	// 정렬 순서: A(-2.0) < B(-0.5) < C(0.5) < D(2.0)
	values := []float64{-2.0, -0.5, 0.5, 2.0}
	got := PercentileRanks(values)

	want := []float64{0, 100.0 / 3, 200.0 / 3, 100}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("PercentileRanks()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPercentileRanksTies(t *testing.T) {
	values := []float64{1, 1, 2}
	got := PercentileRanks(values)

	// 동률 {1,1}은 순위 0,1의 평균 0.5 → 25
	if !almostEqual(got[0], 25) || !almostEqual(got[1], 25) {
		t.Errorf("tied ranks = %v, %v, want 25, 25", got[0], got[1])
	}
	if !almostEqual(got[2], 100) {
		t.Errorf("max rank = %v, want 100", got[2])
	}
}

func TestPercentileRanksSingle(t *testing.T) {
	got := PercentileRanks([]float64{3.14})
	if !almostEqual(got[0], 50) {
		t.Errorf("single-value rank = %v, want 50", got[0])
	}
}

func TestPercentile(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50}

	tests := []struct {
		pct  float64
		want float64
	}{
		{0, 10},
		{25, 20},
		{50, 30},
		{100, 50},
		{12.5, 15}, // 선형 보간
	}

	for _, tt := range tests {
		if got := Percentile(values, tt.pct); !almostEqual(got, tt.want) {
			t.Errorf("Percentile(%v) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestWinsorize(t *testing.T) {
	// 극단값이 경계로 잘리는지 확인
	values := []float64{1, 2, 3, 4, 100}
	got := Winsorize(values, 0, 75)

	high := Percentile(values, 75)
	if !almostEqual(got[4], high) {
		t.Errorf("Winsorize upper clamp = %v, want %v", got[4], high)
	}
	for i := 0; i < 4; i++ {
		if !almostEqual(got[i], values[i]) {
			t.Errorf("Winsorize()[%d] = %v, want unchanged %v", i, got[i], values[i])
		}
	}
}

func TestWinsorizePreservesNaN(t *testing.T) {
	values := []float64{1, math.NaN(), 3}
	got := Winsorize(values, 1, 95)
	if !math.IsNaN(got[1]) {
		t.Error("NaN must survive winsorization")
	}
}
