package contracts

import (
	"context"
	"time"
)

// ⭐ SSOT: Repository 인터페이스 정의는 여기서만

// PriceRepository manages daily bar data
type PriceRepository interface {
	GetBySymbolAndDate(ctx context.Context, symbol string, date time.Time) (*Price, error)
	GetBySymbolAndDateRange(ctx context.Context, symbol string, from, to time.Time) ([]*Price, error)
	GetCloses(ctx context.Context, symbol string, asOf time.Time, days int) ([]float64, error)
	GetActiveSymbols(ctx context.Context, asOf time.Time, minDays int) ([]string, error)
	Save(ctx context.Context, price *Price) error
	SaveBatch(ctx context.Context, prices []*Price) error
}

// Price represents a daily bar record
type Price struct {
	Symbol string
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// SentimentRepository manages daily message sentiment data
type SentimentRepository interface {
	GetBySymbolAndDate(ctx context.Context, symbol string, date time.Time) (*Sentiment, error)
	GetBySymbolAndDateRange(ctx context.Context, symbol string, from, to time.Time) ([]*Sentiment, error)
	Save(ctx context.Context, sentiment *Sentiment) error
	SaveBatch(ctx context.Context, sentiments []*Sentiment) error
}

// Sentiment represents one day of message sentiment for a symbol
type Sentiment struct {
	Symbol        string
	Date          time.Time
	TotalMessages float64 // 총 메시지 수
	BullMessages  float64 // 강세 메시지 수
	BearMessages  float64 // 약세 메시지 수
}

// NetBullish returns bull minus bear message count
func (s *Sentiment) NetBullish() float64 {
	return s.BullMessages - s.BearMessages
}

// ScoreRepository persists daily composite score snapshots
type ScoreRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*ScoreSet, error)
	GetLatest(ctx context.Context) (*ScoreSet, error)
	Save(ctx context.Context, scores *ScoreSet) error
}

// RequestRepository persists submitted optimization requests
type RequestRepository interface {
	GetByRunID(ctx context.Context, runID string) (*OptimizationRequest, error)
	GetLatest(ctx context.Context) (*OptimizationRequest, error)
	Save(ctx context.Context, req *OptimizationRequest) error
}

// UniverseRepository persists daily universe snapshots
type UniverseRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*Universe, error)
	GetLatest(ctx context.Context) (*Universe, error)
	Save(ctx context.Context, universe *Universe) error
}
