package contracts

import "time"

// Universe represents tradeable symbols passed from S1 to S2
// ⭐ SSOT: S1 → S2 투자 가능 종목 전달
type Universe struct {
	Date       time.Time         `json:"date"`
	Symbols    []string          `json:"symbols"`               // 투자 가능 심볼
	Excluded   map[string]string `json:"excluded"`              // 제외 심볼: 사유
	TotalCount int               `json:"total_count,omitempty"` // 전체 심볼 수
}

// Contains checks if a symbol is in the universe
func (u *Universe) Contains(symbol string) bool {
	for _, s := range u.Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// IsExcluded checks if a symbol is excluded with reason
func (u *Universe) IsExcluded(symbol string) (bool, string) {
	reason, exists := u.Excluded[symbol]
	return exists, reason
}

// Count returns the number of tradeable symbols
func (u *Universe) Count() int {
	return len(u.Symbols)
}
