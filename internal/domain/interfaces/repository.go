package interfaces

import (
	"context"

	"netstate-agent/internal/domain/entities"
)

// NetworkStateRepository는 노드의 목표 네트워크 상태 저장소 인터페이스입니다
type NetworkStateRepository interface {
	// GetDesiredState는 노드의 목표 상태와 세대 번호를 조회합니다.
	// 등록된 상태가 없으면 NotFound 에러를 반환합니다.
	GetDesiredState(ctx context.Context, nodeName string) (*entities.NetworkState, int64, error)

	// GetAppliedGeneration은 마지막으로 적용에 성공한 세대 번호를 반환합니다.
	// 적용 이력이 없으면 0을 반환합니다.
	GetAppliedGeneration(ctx context.Context, nodeName string) (int64, error)

	// MarkApplied는 해당 세대의 적용 결과를 기록합니다
	MarkApplied(ctx context.Context, nodeName string, generation int64, success bool) error
}
