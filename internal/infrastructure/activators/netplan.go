package activators

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"netstate-agent/internal/domain/entities"
	"netstate-agent/internal/domain/interfaces"
)

// NetplanActivator는 netplan apply 전역 명령으로 설정을 적용합니다.
// netplan에는 선택적 teardown이 없어서 down도 같은 전역 적용 명령입니다.
// 즉 down은 인터페이스 제거 보장이 아니라 "현재 저장된 설정으로 수렴"을 뜻합니다.
type NetplanActivator struct {
	executor interfaces.CommandExecutor
	logger   *logrus.Logger
	timeout  time.Duration
}

// NewNetplanActivator는 새로운 NetplanActivator를 생성합니다
func NewNetplanActivator(executor interfaces.CommandExecutor, logger *logrus.Logger) *NetplanActivator {
	return &NetplanActivator{executor: executor, logger: logger, timeout: defaultCommandTimeout}
}

// apply는 netplan apply 전역 명령 하나를 실행합니다
func (a *NetplanActivator) apply(ctx context.Context) bool {
	a.logger.Debug("개별 인터페이스 제어 대신 'netplan apply' 호출")
	return alterInterface(ctx, a.executor, a.logger, a.timeout, "all", "netplan", "apply")
}

// BringUpInterface는 전역 적용을 실행합니다
func (a *NetplanActivator) BringUpInterface(ctx context.Context, name string) bool {
	return a.apply(ctx)
}

// BringDownInterface는 전역 적용을 실행합니다
func (a *NetplanActivator) BringDownInterface(ctx context.Context, name string) bool {
	return a.apply(ctx)
}

// BringUpInterfaces는 이름 목록을 무시하고 전역 적용 하나를 실행합니다
func (a *NetplanActivator) BringUpInterfaces(ctx context.Context, names []string) bool {
	return a.apply(ctx)
}

// BringDownInterfaces는 이름 목록을 무시하고 전역 적용 하나를 실행합니다
func (a *NetplanActivator) BringDownInterfaces(ctx context.Context, names []string) bool {
	return a.apply(ctx)
}

// BringUpAllInterfaces는 전역 적용을 실행합니다
func (a *NetplanActivator) BringUpAllInterfaces(ctx context.Context, state *entities.NetworkState) bool {
	return a.apply(ctx)
}

// BringDownAllInterfaces는 전역 적용을 실행합니다
func (a *NetplanActivator) BringDownAllInterfaces(ctx context.Context, state *entities.NetworkState) bool {
	return a.apply(ctx)
}
