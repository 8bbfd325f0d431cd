package strategy

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/wonpil/sentrev/internal/contracts"
	"github.com/wonpil/sentrev/internal/strategyconfig"
	"github.com/wonpil/sentrev/pkg/config"
	"github.com/wonpil/sentrev/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "test", LogLevel: "error", LogFormat: "json"})
}

func testStrategy() *strategyconfig.Config {
	return &strategyconfig.Config{
		Scoring: strategyconfig.Scoring{
			Winsorize: strategyconfig.Winsorize{LowerPct: 1, UpperPct: 95},
			Eligibility: strategyconfig.Eligibility{
				LowBand:  strategyconfig.Band{Min: 0, Max: 25},
				HighBand: strategyconfig.Band{Min: 75, Max: 100},
			},
		},
	}
}

// row builds a fully populated factor row
func row(symbol string, sma50, sma200, msgAvg, sentAvg, ret float64) *contracts.FactorRow {
	return &contracts.FactorRow{
		Symbol:         symbol,
		SMA50:          sma50,
		SMA200:         sma200,
		MessageAvg:     msgAvg,
		SentimentAvg:   sentAvg,
		TrailingReturn: ret,
	}
}

func factorSet(rows ...*contracts.FactorRow) *contracts.FactorSet {
	fs := &contracts.FactorSet{
		Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Rows: make(map[string]*contracts.FactorRow),
	}
	for _, r := range rows {
		fs.Rows[r.Symbol] = r
	}
	return fs
}

func TestComposeQuartileEligibility(t *testing.T) {
	// z-score 순서: A < B < C < D → 백분위 0, 33.3, 66.7, 100
	fs := factorSet(
		row("A", 100, 110, 100, 50, -0.020),
		row("B", 100, 100, 100, 25, -0.005),
		row("C", 100, 100, 90, 30, 0.005),
		row("D", 100, 90, 120, 40, 0.020),
	)

	composer := NewComposer(testStrategy(), testLogger())
	scores, err := composer.Compose(fs)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	// 하위 25% = A, 상위 25% = D
	if scores.Count() != 2 {
		t.Fatalf("scored count = %d, want 2 (got %v)", scores.Count(), scores.Scores)
	}
	if _, ok := scores.Get("A"); !ok {
		t.Error("A (bottom quartile) must be eligible")
	}
	if _, ok := scores.Get("D"); !ok {
		t.Error("D (top quartile) must be eligible")
	}
	for _, mid := range []string{"B", "C"} {
		if _, ok := scores.Get(mid); ok {
			t.Errorf("%s (middle band) must be filtered", mid)
		}
		if _, ok := scores.Filtered[mid]; !ok {
			t.Errorf("%s must carry a filter reason", mid)
		}
	}

	// 과매도 A는 음수, 과열 D는 양수 점수
	if a, _ := scores.Get("A"); a >= 0 {
		t.Errorf("score A = %v, want negative", a)
	}
	if d, _ := scores.Get("D"); d <= 0 {
		t.Errorf("score D = %v, want positive", d)
	}
}

func TestComposeExactValues(t *testing.T) {
	// 2심볼 횡단면: z = ∓1, 백분위 0/100 → 둘 다 적격
	fs := factorSet(
		row("A", 100, 110, 100, 50, -0.01), // sentiment 2.0, trend 1.1
		row("B", 100, 90, 120, 30, 0.01),   // sentiment 4.0, trend 0.9
	)

	composer := NewComposer(testStrategy(), testLogger())
	scores, err := composer.Compose(fs)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	// 윈저라이즈 [1, 95] over {2, 4}: 하한 2.02, 상한 3.9
	wantA := 2.02 * -1.0 * 1.1
	wantB := 3.9 * 1.0 * 0.9

	if a, _ := scores.Get("A"); math.Abs(a-wantA) > 1e-9 {
		t.Errorf("score A = %v, want %v", a, wantA)
	}
	if b, _ := scores.Get("B"); math.Abs(b-wantB) > 1e-9 {
		t.Errorf("score B = %v, want %v", b, wantB)
	}
}

func TestComposeZeroNetSentiment(t *testing.T) {
	// 강세와 약세가 정확히 상쇄 → 감성 비율 ±Inf → 1.0으로 치환
	fs := factorSet(
		row("A", 100, 100, 100, 0, -0.01), // SentimentAvg 0
		row("B", 100, 100, 100, 50, 0.01),
	)

	composer := NewComposer(testStrategy(), testLogger())
	scores, err := composer.Compose(fs)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	// A: 감성 1.0 (치환), z=-1, trend=1.0 → 윈저라이즈 {1.0, 2.0} [1,95]:
	// 하한 1.01, 상한 1.95 → A는 1.01로 클램프
	wantA := 1.01 * -1.0 * 1.0
	if a, _ := scores.Get("A"); math.Abs(a-wantA) > 1e-9 {
		t.Errorf("score A = %v, want %v", a, wantA)
	}
}

func TestComposeMissingFactorsDefaultToOne(t *testing.T) {
	// A는 감성/추세 결측: 해당 항은 1.0으로 치환되어 점수 = z
	a := contracts.NewFactorRow("A")
	a.TrailingReturn = -0.01

	fs := factorSet(
		a,
		row("B", 100, 90, 120, 30, 0.01),
	)

	composer := NewComposer(testStrategy(), testLogger())
	scores, err := composer.Compose(fs)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	// z = -1, 감성 NaN → 1.0, 추세 NaN → 1.0
	if got, ok := scores.Get("A"); !ok || math.Abs(got-(-1.0)) > 1e-9 {
		t.Errorf("score A = %v (ok=%v), want -1.0", got, ok)
	}
}

func TestComposeMissingReturnFiltered(t *testing.T) {
	// 수익률 결측은 z-score 불가 → 적격 판정에서 제외
	a := row("A", 100, 100, 100, 50, math.NaN())
	fs := factorSet(
		a,
		row("B", 100, 100, 100, 50, -0.01),
		row("C", 100, 100, 100, 50, 0.01),
	)

	composer := NewComposer(testStrategy(), testLogger())
	scores, err := composer.Compose(fs)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if _, ok := scores.Get("A"); ok {
		t.Error("A with missing return must not be scored")
	}
	if _, ok := scores.Filtered["A"]; !ok {
		t.Error("A must carry a filter reason")
	}
}

func TestComposeIdempotent(t *testing.T) {
	fs := factorSet(
		row("A", 100, 110, 100, 50, -0.020),
		row("B", 100, 100, 100, 25, -0.005),
		row("C", 100, 100, 90, 30, 0.005),
		row("D", 100, 90, 120, 40, 0.020),
	)

	composer := NewComposer(testStrategy(), testLogger())

	first, err := composer.Compose(fs)
	if err != nil {
		t.Fatalf("first Compose failed: %v", err)
	}
	second, err := composer.Compose(fs)
	if err != nil {
		t.Fatalf("second Compose failed: %v", err)
	}

	if !reflect.DeepEqual(first.Scores, second.Scores) {
		t.Errorf("composition not idempotent: %v vs %v", first.Scores, second.Scores)
	}
	if !reflect.DeepEqual(first.Filtered, second.Filtered) {
		t.Errorf("filter reasons not idempotent: %v vs %v", first.Filtered, second.Filtered)
	}
}

func TestComposeEmptyInput(t *testing.T) {
	composer := NewComposer(testStrategy(), testLogger())

	if _, err := composer.Compose(nil); err == nil {
		t.Error("expected error for nil factor set")
	}
	if _, err := composer.Compose(&contracts.FactorSet{}); err == nil {
		t.Error("expected error for empty factor set")
	}
}
