package usecases

import (
	"context"

	"github.com/sirupsen/logrus"

	"netstate-agent/internal/domain/entities"
	"netstate-agent/internal/domain/errors"
	"netstate-agent/internal/infrastructure/activators"
	"netstate-agent/internal/infrastructure/metrics"
)

// TeardownNetworkUseCase는 상태에 기술된 인터페이스들을 비활성화하는 유스케이스입니다
type TeardownNetworkUseCase struct {
	activatorRegistry *activators.Registry
	logger            *logrus.Logger
}

// NewTeardownNetworkUseCase는 새로운 TeardownNetworkUseCase를 생성합니다
func NewTeardownNetworkUseCase(activatorRegistry *activators.Registry, logger *logrus.Logger) *TeardownNetworkUseCase {
	return &TeardownNetworkUseCase{
		activatorRegistry: activatorRegistry,
		logger:            logger,
	}
}

// TeardownNetworkInput은 유스케이스의 입력 파라미터입니다
type TeardownNetworkInput struct {
	State             *entities.NetworkState
	Target            string
	ActivatorPriority []string
}

// TeardownNetworkOutput은 유스케이스의 출력 결과입니다
type TeardownNetworkOutput struct {
	ActivatorName string
	Deactivated   bool
}

// Execute는 인터페이스 비활성화 유스케이스를 실행합니다
func (uc *TeardownNetworkUseCase) Execute(ctx context.Context, input TeardownNetworkInput) (*TeardownNetworkOutput, error) {
	if input.State == nil {
		return nil, errors.NewValidationError("비활성화할 상태가 없음", nil)
	}

	activatorSel, err := uc.activatorRegistry.Select(input.ActivatorPriority, input.Target)
	if err != nil {
		return nil, err
	}

	ok := activatorSel.Activator.BringDownAllInterfaces(ctx, input.State)
	metrics.RecordActivation(activatorSel.Name, ok)

	output := &TeardownNetworkOutput{
		ActivatorName: activatorSel.Name,
		Deactivated:   ok,
	}
	if !ok {
		return output, errors.NewNetworkError("일부 인터페이스 비활성화 실패", nil)
	}

	uc.logger.WithField("activator", activatorSel.Name).Info("네트워크 인터페이스 비활성화 완료")
	return output, nil
}
