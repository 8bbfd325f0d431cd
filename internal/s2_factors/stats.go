package s2_factors

import (
	"math"
	"sort"
)

// 횡단면 통계 유틸리티
// ⭐ SSOT: 팩터/점수 계산에 쓰이는 통계는 여기서만
//
// 모든 함수는 NaN을 결측으로 취급한다: 결측은 집계에서 제외되고
// 결과 벡터에서는 그대로 NaN으로 유지된다.

// SMA returns the simple moving average of the last window values.
// 데이터가 window보다 짧으면 NaN 반환.
func SMA(values []float64, window int) float64 {
	if window <= 0 || len(values) < window {
		return math.NaN()
	}

	sum := 0.0
	for _, v := range values[len(values)-window:] {
		if math.IsNaN(v) {
			return math.NaN()
		}
		sum += v
	}
	return sum / float64(window)
}

// TrailingReturn returns the simple return over the lookback period.
// closes는 과거 → 현재 순서.
func TrailingReturn(closes []float64, lookback int) float64 {
	if lookback <= 0 || len(closes) < lookback+1 {
		return math.NaN()
	}

	current := closes[len(closes)-1]
	past := closes[len(closes)-1-lookback]
	if math.IsNaN(current) || math.IsNaN(past) || past == 0 {
		return math.NaN()
	}
	return current/past - 1.0
}

// Mean returns the mean of non-NaN values. 전부 결측이면 NaN.
func Mean(values []float64) float64 {
	sum := 0.0
	count := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}

// StdDev returns the population standard deviation of non-NaN values.
func StdDev(values []float64) float64 {
	mean := Mean(values)
	if math.IsNaN(mean) {
		return math.NaN()
	}

	sumSq := 0.0
	count := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		d := v - mean
		sumSq += d * d
		count++
	}
	return math.Sqrt(sumSq / float64(count))
}

// ZScores standardizes values cross-sectionally.
// 표준편차가 0이면 (전 종목 동일값) 전부 NaN 반환.
func ZScores(values []float64) []float64 {
	mean := Mean(values)
	std := StdDev(values)

	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsNaN(mean) || std == 0 || math.IsNaN(std) {
			out[i] = math.NaN()
			continue
		}
		out[i] = (v - mean) / std
	}
	return out
}

// PercentileRanks returns each value's percentile rank [0, 100]
// among non-NaN values. 동률은 평균 순위를 사용한다.
func PercentileRanks(values []float64) []float64 {
	type indexed struct {
		idx int
		val float64
	}

	var present []indexed
	for i, v := range values {
		if !math.IsNaN(v) {
			present = append(present, indexed{i, v})
		}
	}

	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}

	n := len(present)
	if n == 0 {
		return out
	}
	if n == 1 {
		// 단일 종목 횡단면은 중립 순위
		out[present[0].idx] = 50
		return out
	}

	sort.Slice(present, func(a, b int) bool { return present[a].val < present[b].val })

	// 동률 그룹에 평균 순위 부여
	for i := 0; i < n; {
		j := i
		for j < n && present[j].val == present[i].val {
			j++
		}
		avgRank := float64(i+j-1) / 2.0
		pct := avgRank / float64(n-1) * 100.0
		for k := i; k < j; k++ {
			out[present[k].idx] = pct
		}
		i = j
	}
	return out
}

// Percentile returns the pct-th percentile of non-NaN values
// using linear interpolation between closest ranks.
func Percentile(values []float64, pct float64) float64 {
	var clean []float64
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return math.NaN()
	}

	sort.Float64s(clean)

	if pct <= 0 {
		return clean[0]
	}
	if pct >= 100 {
		return clean[len(clean)-1]
	}

	pos := pct / 100.0 * float64(len(clean)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return clean[lower]
	}

	frac := pos - float64(lower)
	return clean[lower]*(1-frac) + clean[upper]*frac
}

// Winsorize clamps values to the [lowerPct, upperPct] percentile bounds.
// NaN은 그대로 유지된다. ±Inf는 경계값 계산에서 제외하지 않는다.
func Winsorize(values []float64, lowerPct, upperPct float64) []float64 {
	low := Percentile(values, lowerPct)
	high := Percentile(values, upperPct)

	out := make([]float64, len(values))
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			out[i] = v
		case v < low:
			out[i] = low
		case v > high:
			out[i] = high
		default:
			out[i] = v
		}
	}
	return out
}
