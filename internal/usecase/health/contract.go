package health

import "context"

// RankingChecker verifies that the ranking pipeline produces sane output.
type RankingChecker interface {
	HealthCheck(ctx context.Context) error
}
