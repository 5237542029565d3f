package activators

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"netstate-agent/internal/domain/entities"
	"netstate-agent/internal/domain/interfaces"
)

// IfUpDownActivator는 클래식 ifup/ifdown으로 인터페이스를 제어합니다.
// `ifup --all` 류는 어디서나 지원되지 않으므로 복수형도 인터페이스별 호출을 유지합니다.
type IfUpDownActivator struct {
	executor interfaces.CommandExecutor
	logger   *logrus.Logger
	timeout  time.Duration
}

// NewIfUpDownActivator는 새로운 IfUpDownActivator를 생성합니다
func NewIfUpDownActivator(executor interfaces.CommandExecutor, logger *logrus.Logger) *IfUpDownActivator {
	return &IfUpDownActivator{executor: executor, logger: logger, timeout: defaultCommandTimeout}
}

// BringUpInterface는 ifup으로 인터페이스를 활성화합니다
func (a *IfUpDownActivator) BringUpInterface(ctx context.Context, name string) bool {
	return alterInterface(ctx, a.executor, a.logger, a.timeout, name, "ifup", name)
}

// BringDownInterface는 ifdown으로 인터페이스를 비활성화합니다
func (a *IfUpDownActivator) BringDownInterface(ctx context.Context, name string) bool {
	return alterInterface(ctx, a.executor, a.logger, a.timeout, name, "ifdown", name)
}

// BringUpInterfaces는 인터페이스별 ifup 호출의 논리곱입니다
func (a *IfUpDownActivator) BringUpInterfaces(ctx context.Context, names []string) bool {
	return bringUpEach(ctx, a, names)
}

// BringDownInterfaces는 인터페이스별 ifdown 호출의 논리곱입니다
func (a *IfUpDownActivator) BringDownInterfaces(ctx context.Context, names []string) bool {
	return bringDownEach(ctx, a, names)
}

// BringUpAllInterfaces는 상태의 모든 인터페이스를 활성화합니다
func (a *IfUpDownActivator) BringUpAllInterfaces(ctx context.Context, state *entities.NetworkState) bool {
	return a.BringUpInterfaces(ctx, state.InterfaceNames())
}

// BringDownAllInterfaces는 상태의 모든 인터페이스를 비활성화합니다
func (a *IfUpDownActivator) BringDownAllInterfaces(ctx context.Context, state *entities.NetworkState) bool {
	return a.BringDownInterfaces(ctx, state.InterfaceNames())
}
