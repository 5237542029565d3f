package interfaces

import (
	"context"

	"netstate-agent/internal/domain/entities"
)

// Renderer는 NetworkState를 하나의 백엔드 설정 파일 형식으로 변환하여
// 대상 루트에 기록하는 인터페이스입니다
type Renderer interface {
	// Render는 상태를 변환하여 target 아래에 설정 파일들을 기록합니다.
	// 변환 단계에서 실패하면 어떤 파일도 기록되지 않습니다.
	Render(ctx context.Context, state *entities.NetworkState, target string) error
}

// NetworkActivator는 백엔드의 제어 도구로 인터페이스를 올리고 내리는 인터페이스입니다.
// 모든 연산은 성공 여부를 bool로 반환하며, 외부 명령 실패는 에러가 아니라
// 경고 로그 + false로 처리됩니다.
type NetworkActivator interface {
	// BringUpInterface는 단일 인터페이스를 활성화합니다
	BringUpInterface(ctx context.Context, name string) bool

	// BringDownInterface는 단일 인터페이스를 비활성화합니다
	BringDownInterface(ctx context.Context, name string) bool

	// BringUpInterfaces는 여러 인터페이스를 활성화합니다.
	// 기본 구현은 개별 호출의 논리곱이며 중간 실패에도 나머지를 모두 시도합니다.
	// 전체 적용형 백엔드는 이름 목록을 무시하고 전역 명령 하나를 실행합니다.
	BringUpInterfaces(ctx context.Context, names []string) bool

	// BringDownInterfaces는 여러 인터페이스를 비활성화합니다
	BringDownInterfaces(ctx context.Context, names []string) bool

	// BringUpAllInterfaces는 상태의 모든 인터페이스를 활성화합니다
	BringUpAllInterfaces(ctx context.Context, state *entities.NetworkState) bool

	// BringDownAllInterfaces는 상태의 모든 인터페이스를 비활성화합니다
	BringDownAllInterfaces(ctx context.Context, state *entities.NetworkState) bool
}
