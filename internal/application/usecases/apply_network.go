package usecases

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"netstate-agent/internal/domain/entities"
	"netstate-agent/internal/domain/errors"
	"netstate-agent/internal/infrastructure/activators"
	"netstate-agent/internal/infrastructure/metrics"
	"netstate-agent/internal/infrastructure/renderers"
)

// ApplyNetworkUseCase는 목표 네트워크 상태를 대상 시스템에 적용하는 유스케이스입니다.
// 렌더러 선택 → 설정 파일 렌더링 → 액티베이터 선택 → 인터페이스 활성화 순서로 진행합니다.
type ApplyNetworkUseCase struct {
	rendererRegistry  *renderers.Registry
	activatorRegistry *activators.Registry
	logger            *logrus.Logger
}

// NewApplyNetworkUseCase는 새로운 ApplyNetworkUseCase를 생성합니다
func NewApplyNetworkUseCase(
	rendererRegistry *renderers.Registry,
	activatorRegistry *activators.Registry,
	logger *logrus.Logger,
) *ApplyNetworkUseCase {
	return &ApplyNetworkUseCase{
		rendererRegistry:  rendererRegistry,
		activatorRegistry: activatorRegistry,
		logger:            logger,
	}
}

// ApplyNetworkInput은 유스케이스의 입력 파라미터입니다
type ApplyNetworkInput struct {
	State *entities.NetworkState

	// Target은 설정을 기록할 루트입니다. ""이면 라이브 시스템입니다.
	Target string

	// RendererPriority/ActivatorPriority는 nil이면 기본 탐색 순서를 사용합니다
	RendererPriority  []string
	ActivatorPriority []string

	// RenderOnly는 활성화를 생략합니다 (오프라인 이미지 설정)
	RenderOnly bool
}

// ApplyNetworkOutput은 유스케이스의 출력 결과입니다
type ApplyNetworkOutput struct {
	RendererName  string
	ActivatorName string
	Activated     bool
}

// Execute는 네트워크 상태 적용 유스케이스를 실행합니다
func (uc *ApplyNetworkUseCase) Execute(ctx context.Context, input ApplyNetworkInput) (*ApplyNetworkOutput, error) {
	if input.State == nil {
		return nil, errors.NewValidationError("적용할 상태가 없음", nil)
	}
	if err := input.State.Validate(); err != nil {
		metrics.RecordError("validation")
		return nil, errors.NewValidationError("네트워크 상태가 유효하지 않음", err)
	}

	// 1. 렌더러 선택
	rendererSel, err := uc.rendererRegistry.Select(input.RendererPriority, input.Target)
	if err != nil {
		return nil, err
	}

	// 2. 설정 파일 렌더링
	start := time.Now()
	if err := rendererSel.Renderer.Render(ctx, input.State, input.Target); err != nil {
		metrics.RecordRender(rendererSel.Name, "failed", time.Since(start).Seconds())
		return nil, err
	}
	metrics.RecordRender(rendererSel.Name, "success", time.Since(start).Seconds())

	output := &ApplyNetworkOutput{RendererName: rendererSel.Name}

	if input.RenderOnly {
		uc.logger.WithFields(logrus.Fields{
			"renderer": rendererSel.Name,
			"target":   input.Target,
		}).Info("렌더링만 수행하고 활성화 생략")
		return output, nil
	}

	// 3. 액티베이터 선택
	activatorSel, err := uc.activatorRegistry.Select(input.ActivatorPriority, input.Target)
	if err != nil {
		return nil, err
	}
	output.ActivatorName = activatorSel.Name

	// 4. 루프백을 제외한 인터페이스 활성화
	names := input.State.NonLoopbackNames()
	ok := activatorSel.Activator.BringUpInterfaces(ctx, names)
	metrics.RecordActivation(activatorSel.Name, ok)
	output.Activated = ok

	if !ok {
		return output, errors.NewNetworkError("일부 인터페이스 활성화 실패", nil)
	}

	uc.logger.WithFields(logrus.Fields{
		"renderer":   rendererSel.Name,
		"activator":  activatorSel.Name,
		"interfaces": len(names),
	}).Info("네트워크 상태 적용 완료")

	return output, nil
}
