package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sentrev",
	Short: "sentrev - 감성 평균회귀 주간 리밸런스 전략",
	Long: `sentrev Unified CLI

감성 데이터와 가격 추세를 결합한 미국 주식 평균회귀 전략.
일별 장전 스테이징(S1→S2→S3)으로 점수를 저장하고,
주 첫 거래일에 외부 옵티마이저로 최적화 요청을 제출한다.

Usage:
  go run ./cmd/sentrev [command]

Examples:
  go run ./cmd/sentrev api
  go run ./cmd/sentrev scheduler start
  go run ./cmd/sentrev run staging
  go run ./cmd/sentrev run rebalance --dry-run`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
