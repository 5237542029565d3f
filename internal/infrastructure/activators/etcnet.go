package activators

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"netstate-agent/internal/domain/entities"
	"netstate-agent/internal/domain/interfaces"
)

// EtcnetActivator는 etcnet 레이아웃의 ifup/ifdown으로 인터페이스를 제어합니다.
// etcnet에는 재시작 프리미티브가 없으므로 up은 ifdown 후 ifup 쌍으로 구성합니다.
type EtcnetActivator struct {
	executor interfaces.CommandExecutor
	logger   *logrus.Logger
	timeout  time.Duration
}

// NewEtcnetActivator는 새로운 EtcnetActivator를 생성합니다
func NewEtcnetActivator(executor interfaces.CommandExecutor, logger *logrus.Logger) *EtcnetActivator {
	return &EtcnetActivator{executor: executor, logger: logger, timeout: defaultCommandTimeout}
}

// BringUpInterface는 ifdown 후 ifup을 실행합니다.
// down 실패가 up 시도를 막지 않으며 결과는 두 명령의 논리곱입니다.
func (a *EtcnetActivator) BringUpInterface(ctx context.Context, name string) bool {
	down := alterInterface(ctx, a.executor, a.logger, a.timeout, name, "ifdown", name)
	up := alterInterface(ctx, a.executor, a.logger, a.timeout, name, "ifup", name)
	return down && up
}

// BringDownInterface는 ifdown으로 인터페이스를 비활성화합니다
func (a *EtcnetActivator) BringDownInterface(ctx context.Context, name string) bool {
	return alterInterface(ctx, a.executor, a.logger, a.timeout, name, "ifdown", name)
}

// BringUpInterfaces는 인터페이스별 호출의 논리곱입니다
func (a *EtcnetActivator) BringUpInterfaces(ctx context.Context, names []string) bool {
	return bringUpEach(ctx, a, names)
}

// BringDownInterfaces는 인터페이스별 호출의 논리곱입니다
func (a *EtcnetActivator) BringDownInterfaces(ctx context.Context, names []string) bool {
	return bringDownEach(ctx, a, names)
}

// BringUpAllInterfaces는 상태의 모든 인터페이스를 활성화합니다
func (a *EtcnetActivator) BringUpAllInterfaces(ctx context.Context, state *entities.NetworkState) bool {
	return a.BringUpInterfaces(ctx, state.InterfaceNames())
}

// BringDownAllInterfaces는 상태의 모든 인터페이스를 비활성화합니다
func (a *EtcnetActivator) BringDownAllInterfaces(ctx context.Context, state *entities.NetworkState) bool {
	return a.BringDownInterfaces(ctx, state.InterfaceNames())
}
