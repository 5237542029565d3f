package activators

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"netstate-agent/internal/domain/entities"
	"netstate-agent/internal/domain/interfaces"
)

// NetworkManagerActivator는 nmcli로 인터페이스를 제어합니다
type NetworkManagerActivator struct {
	executor interfaces.CommandExecutor
	logger   *logrus.Logger
	timeout  time.Duration
}

// NewNetworkManagerActivator는 새로운 NetworkManagerActivator를 생성합니다
func NewNetworkManagerActivator(executor interfaces.CommandExecutor, logger *logrus.Logger) *NetworkManagerActivator {
	return &NetworkManagerActivator{executor: executor, logger: logger, timeout: defaultCommandTimeout}
}

// BringUpInterface는 nmcli connection up으로 인터페이스를 활성화합니다
func (a *NetworkManagerActivator) BringUpInterface(ctx context.Context, name string) bool {
	return alterInterface(ctx, a.executor, a.logger, a.timeout, name, "nmcli", "connection", "up", "ifname", name)
}

// BringDownInterface는 nmcli connection down으로 인터페이스를 비활성화합니다
func (a *NetworkManagerActivator) BringDownInterface(ctx context.Context, name string) bool {
	return alterInterface(ctx, a.executor, a.logger, a.timeout, name, "nmcli", "connection", "down", name)
}

// BringUpInterfaces는 인터페이스별 호출의 논리곱입니다
func (a *NetworkManagerActivator) BringUpInterfaces(ctx context.Context, names []string) bool {
	return bringUpEach(ctx, a, names)
}

// BringDownInterfaces는 인터페이스별 호출의 논리곱입니다
func (a *NetworkManagerActivator) BringDownInterfaces(ctx context.Context, names []string) bool {
	return bringDownEach(ctx, a, names)
}

// BringUpAllInterfaces는 상태의 모든 인터페이스를 활성화합니다
func (a *NetworkManagerActivator) BringUpAllInterfaces(ctx context.Context, state *entities.NetworkState) bool {
	return a.BringUpInterfaces(ctx, state.InterfaceNames())
}

// BringDownAllInterfaces는 상태의 모든 인터페이스를 비활성화합니다
func (a *NetworkManagerActivator) BringDownAllInterfaces(ctx context.Context, state *entities.NetworkState) bool {
	return a.BringDownInterfaces(ctx, state.InterfaceNames())
}
