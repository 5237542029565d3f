package polling

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"netstate-agent/internal/infrastructure/metrics"
)

// Strategy는 폴링 전략 인터페이스입니다
type Strategy interface {
	// NextInterval은 다음 폴링까지의 대기 시간을 반환합니다
	NextInterval(success bool) time.Duration
	// Reset은 폴링 전략을 초기 상태로 리셋합니다
	Reset()
}

// ExponentialBackoffStrategy는 지수 백오프를 구현하는 폴링 전략입니다.
// 사이클이 실패할 때마다 간격을 늘리고 성공하면 기본 간격으로 돌아갑니다.
type ExponentialBackoffStrategy struct {
	baseInterval   time.Duration
	maxInterval    time.Duration
	multiplier     float64
	currentBackoff int
	logger         *logrus.Logger
}

// NewExponentialBackoffStrategy는 새로운 지수 백오프 전략을 생성합니다
func NewExponentialBackoffStrategy(
	baseInterval time.Duration,
	maxInterval time.Duration,
	multiplier float64,
	logger *logrus.Logger,
) *ExponentialBackoffStrategy {
	if multiplier <= 1 {
		multiplier = 2.0
	}

	return &ExponentialBackoffStrategy{
		baseInterval:   baseInterval,
		maxInterval:    maxInterval,
		multiplier:     multiplier,
		currentBackoff: 0,
		logger:         logger,
	}
}

// NextInterval은 다음 폴링까지의 대기 시간을 계산합니다
func (s *ExponentialBackoffStrategy) NextInterval(success bool) time.Duration {
	if success {
		// 성공하면 백오프 리셋
		if s.currentBackoff > 0 {
			s.logger.Debug("성공 후 백오프 리셋")
			s.currentBackoff = 0
			metrics.SetBackoffLevel(0)
		}
		return s.baseInterval
	}

	// 실패 시 백오프 증가
	s.currentBackoff++
	metrics.SetBackoffLevel(float64(s.currentBackoff))

	backoffDuration := float64(s.baseInterval) * math.Pow(s.multiplier, float64(s.currentBackoff-1))
	nextInterval := time.Duration(backoffDuration)

	// 최대 간격 제한
	if nextInterval > s.maxInterval {
		nextInterval = s.maxInterval
	}

	s.logger.WithFields(logrus.Fields{
		"backoff_count": s.currentBackoff,
		"next_interval": nextInterval,
		"max_interval":  s.maxInterval,
	}).Debug("지수 백오프 간격 계산")

	return nextInterval
}

// Reset은 백오프 카운터를 리셋합니다
func (s *ExponentialBackoffStrategy) Reset() {
	s.currentBackoff = 0
	metrics.SetBackoffLevel(0)
}

// PollingController는 폴링 루프를 관리하는 컨트롤러입니다
type PollingController struct {
	strategy Strategy
	ticker   *time.Ticker
	logger   *logrus.Logger
}

// NewPollingController는 새로운 폴링 컨트롤러를 생성합니다
func NewPollingController(strategy Strategy, logger *logrus.Logger) *PollingController {
	return &PollingController{
		strategy: strategy,
		logger:   logger,
	}
}

// Start는 컨텍스트가 취소될 때까지 폴링을 반복합니다
func (c *PollingController) Start(ctx context.Context, task func(context.Context) error) error {
	initialInterval := c.strategy.NextInterval(true)
	c.ticker = time.NewTicker(initialInterval)
	defer c.ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-c.ticker.C:
			start := time.Now()
			err := task(ctx)
			metrics.RecordPollingCycle(time.Since(start).Seconds())

			nextInterval := c.strategy.NextInterval(err == nil)
			c.ticker.Reset(nextInterval)

			if err != nil {
				c.logger.WithError(err).Error("폴링 작업 실패")
			}
		}
	}
}
