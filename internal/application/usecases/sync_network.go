package usecases

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"netstate-agent/internal/domain/errors"
	"netstate-agent/internal/domain/interfaces"
	"netstate-agent/internal/infrastructure/health"
	"netstate-agent/internal/infrastructure/metrics"
)

// SyncNetworkUseCase는 폴링 사이클 하나를 수행하는 유스케이스입니다.
// 저장소의 목표 상태 세대가 마지막 적용 세대보다 새로우면 적용하고 결과를 기록합니다.
type SyncNetworkUseCase struct {
	repository    interfaces.NetworkStateRepository
	applyUseCase  *ApplyNetworkUseCase
	healthService *health.HealthService
	logger        *logrus.Logger
}

// NewSyncNetworkUseCase는 새로운 SyncNetworkUseCase를 생성합니다
func NewSyncNetworkUseCase(
	repo interfaces.NetworkStateRepository,
	applyUseCase *ApplyNetworkUseCase,
	healthService *health.HealthService,
	logger *logrus.Logger,
) *SyncNetworkUseCase {
	return &SyncNetworkUseCase{
		repository:    repo,
		applyUseCase:  applyUseCase,
		healthService: healthService,
		logger:        logger,
	}
}

// SyncNetworkInput은 유스케이스의 입력 파라미터입니다
type SyncNetworkInput struct {
	NodeName          string
	Target            string
	RendererPriority  []string
	ActivatorPriority []string
}

// SyncNetworkOutput은 유스케이스의 출력 결과입니다
type SyncNetworkOutput struct {
	Generation int64
	Applied    bool
}

// Execute는 폴링 사이클 하나를 실행합니다
func (uc *SyncNetworkUseCase) Execute(ctx context.Context, input SyncNetworkInput) (*SyncNetworkOutput, error) {
	queryStart := time.Now()
	state, generation, err := uc.repository.GetDesiredState(ctx, input.NodeName)
	metrics.RecordDBQuery("get_desired_state", time.Since(queryStart).Seconds())
	if err != nil {
		// 아직 등록된 목표 상태가 없는 노드는 정상 상황이다
		if errors.IsNotFoundError(err) {
			uc.logger.WithField("node", input.NodeName).Debug("등록된 목표 상태 없음")
			return &SyncNetworkOutput{}, nil
		}
		uc.healthService.UpdateDBHealth(false, err)
		metrics.SetDBConnectionStatus(false)
		return nil, err
	}
	uc.healthService.UpdateDBHealth(true, nil)
	metrics.SetDBConnectionStatus(true)

	applied, err := uc.repository.GetAppliedGeneration(ctx, input.NodeName)
	if err != nil {
		return nil, err
	}

	if generation <= applied {
		uc.logger.WithFields(logrus.Fields{
			"node":       input.NodeName,
			"generation": generation,
		}).Debug("목표 상태가 이미 적용됨")
		return &SyncNetworkOutput{Generation: generation}, nil
	}

	uc.logger.WithFields(logrus.Fields{
		"node":               input.NodeName,
		"generation":         generation,
		"applied_generation": applied,
	}).Info("새로운 목표 상태 발견")

	output, applyErr := uc.applyUseCase.Execute(ctx, ApplyNetworkInput{
		State:             state,
		Target:            input.Target,
		RendererPriority:  input.RendererPriority,
		ActivatorPriority: input.ActivatorPriority,
	})

	success := applyErr == nil
	if markErr := uc.repository.MarkApplied(ctx, input.NodeName, generation, success); markErr != nil {
		uc.logger.WithError(markErr).Error("적용 결과 기록 실패")
	}

	if applyErr != nil {
		uc.healthService.IncrementFailedStates()
		return nil, applyErr
	}

	uc.healthService.IncrementAppliedStates()
	uc.healthService.SetLastGeneration(generation)
	if output != nil {
		uc.healthService.SetSelectedBackends(output.RendererName, output.ActivatorName)
	}

	return &SyncNetworkOutput{Generation: generation, Applied: true}, nil
}
