package activators

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"netstate-agent/internal/domain/entities"
	"netstate-agent/internal/domain/interfaces"
)

// NetworkdActivator는 ip link와 systemctl로 systemd-networkd를 제어합니다
type NetworkdActivator struct {
	executor interfaces.CommandExecutor
	logger   *logrus.Logger
	timeout  time.Duration
}

// NewNetworkdActivator는 새로운 NetworkdActivator를 생성합니다
func NewNetworkdActivator(executor interfaces.CommandExecutor, logger *logrus.Logger) *NetworkdActivator {
	return &NetworkdActivator{executor: executor, logger: logger, timeout: defaultCommandTimeout}
}

// BringUpInterface는 ip link set up으로 인터페이스를 활성화합니다
func (a *NetworkdActivator) BringUpInterface(ctx context.Context, name string) bool {
	return alterInterface(ctx, a.executor, a.logger, a.timeout, name, "ip", "link", "set", "up", name)
}

// BringDownInterface는 ip link set down으로 인터페이스를 비활성화합니다
func (a *NetworkdActivator) BringDownInterface(ctx context.Context, name string) bool {
	return alterInterface(ctx, a.executor, a.logger, a.timeout, name, "ip", "link", "set", "down", name)
}

// BringUpInterfaces는 인터페이스별 호출의 논리곱입니다
func (a *NetworkdActivator) BringUpInterfaces(ctx context.Context, names []string) bool {
	return bringUpEach(ctx, a, names)
}

// BringDownInterfaces는 인터페이스별 호출의 논리곱입니다
func (a *NetworkdActivator) BringDownInterfaces(ctx context.Context, names []string) bool {
	return bringDownEach(ctx, a, names)
}

// BringUpAllInterfaces는 networkd/resolved 서비스 재시작 전역 명령 하나로 전체를 적용합니다
func (a *NetworkdActivator) BringUpAllInterfaces(ctx context.Context, state *entities.NetworkState) bool {
	return alterInterface(ctx, a.executor, a.logger, a.timeout, "all",
		"systemctl", "restart", "systemd-networkd", "systemd-resolved")
}

// BringDownAllInterfaces는 상태의 모든 인터페이스를 개별적으로 비활성화합니다
func (a *NetworkdActivator) BringDownAllInterfaces(ctx context.Context, state *entities.NetworkState) bool {
	return a.BringDownInterfaces(ctx, state.InterfaceNames())
}
