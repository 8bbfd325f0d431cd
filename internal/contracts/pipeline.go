package contracts

// Pipeline Stage 정의 (SSOT)
// 모든 로그, 스냅샷, DB row에서 이 상수를 사용해야 함
//
// 파이프라인 흐름:
//   S1 → S2 → S3 → S4
//   Universe  Factors  Scores  Optimize

// Stage represents a pipeline stage
type Stage string

const (
	// StageUniverse S1: 투자 가능 종목 (Universe)
	// 책임: 거래 가능 종목 필터링, 가격/유동성 데이터 커버리지 기준 적용
	// 위치: internal/s1_universe/
	StageUniverse Stage = "S1_UNIVERSE"

	// StageFactors S2: 팩터 계산
	// 책임: 추세(SMA 비율), 감성(메시지량/불베어), 수익률 팩터 산출
	// 위치: internal/s2_factors/
	StageFactors Stage = "S2_FACTORS"

	// StageScores S3: 종합 점수 합성
	// 책임: 윈저라이즈, z-score, 분위 필터, 점수 곱 합성
	// 위치: internal/strategy/
	StageScores Stage = "S3_SCORES"

	// StageOptimize S4: 포트폴리오 최적화 요청
	// 책임: 목적함수/제약조건 구성, 외부 옵티마이저 제출
	// 위치: internal/portfolio/ + internal/execution/
	StageOptimize Stage = "S4_OPTIMIZE"
)

// String returns the stage name
func (s Stage) String() string {
	return string(s)
}

// ShortName returns abbreviated stage name (e.g., "S1", "S2")
func (s Stage) ShortName() string {
	switch s {
	case StageUniverse:
		return "S1"
	case StageFactors:
		return "S2"
	case StageScores:
		return "S3"
	case StageOptimize:
		return "S4"
	default:
		return "UNKNOWN"
	}
}

// Description returns Korean description of the stage
func (s Stage) Description() string {
	switch s {
	case StageUniverse:
		return "투자 가능 종목"
	case StageFactors:
		return "팩터 계산"
	case StageScores:
		return "종합 점수 합성"
	case StageOptimize:
		return "포트폴리오 최적화"
	default:
		return "알 수 없음"
	}
}

// AllStages returns all pipeline stages in order
func AllStages() []Stage {
	return []Stage{
		StageUniverse,
		StageFactors,
		StageScores,
		StageOptimize,
	}
}

// IsValidStage checks if a stage string is valid
func IsValidStage(s string) bool {
	for _, stage := range AllStages() {
		if string(stage) == s {
			return true
		}
	}
	return false
}

// PipelineResult represents the result of a pipeline stage execution
type PipelineResult struct {
	Stage       Stage                  `json:"stage"`
	Success     bool                   `json:"success"`
	InputCount  int                    `json:"input_count"`
	OutputCount int                    `json:"output_count"`
	Duration    int64                  `json:"duration_ms"`
	Error       string                 `json:"error,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
