package activators

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"netstate-agent/internal/domain/constants"
	"netstate-agent/internal/domain/interfaces"
)

// defaultCommandTimeout은 COMMAND_TIMEOUT 설정이 없을 때의 명령 타임아웃입니다
const defaultCommandTimeout = constants.DefaultCommandTimeout * time.Second

// alterInterface는 백엔드 제어 명령 하나를 실행하고 성공 여부를 bool로 접습니다.
// 실패는 경고 로그로만 남기고 에러를 전파하지 않습니다. 성공했더라도 stderr 출력이
// 있으면 경고를 남깁니다.
func alterInterface(ctx context.Context, executor interfaces.CommandExecutor, logger *logrus.Logger, timeout time.Duration, deviceName string, command string, args ...string) bool {
	logger.WithFields(logrus.Fields{
		"command": command,
		"args":    args,
		"device":  deviceName,
	}).Debug("인터페이스 제어 명령 실행")

	_, stderr, err := executor.ExecuteWithTimeout(ctx, timeout, command, args...)
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"command": command,
			"device":  deviceName,
		}).Warn("인터페이스 제어 명령 실패")
		return false
	}

	if len(stderr) > 0 {
		logger.WithFields(logrus.Fields{
			"command": command,
			"device":  deviceName,
			"stderr":  string(stderr),
		}).Warn("인터페이스 제어 명령이 stderr 출력을 냄")
	}

	return true
}

// singleInterfaceOps는 복수형 기본 구현이 필요로 하는 단일 인터페이스 연산입니다
type singleInterfaceOps interface {
	BringUpInterface(ctx context.Context, name string) bool
	BringDownInterface(ctx context.Context, name string) bool
}

// bringUpEach는 모든 인터페이스에 대해 개별 up을 시도하고 결과를 논리곱합니다.
// 하나가 실패해도 나머지를 계속 시도합니다.
func bringUpEach(ctx context.Context, ops singleInterfaceOps, names []string) bool {
	ok := true
	for _, name := range names {
		if !ops.BringUpInterface(ctx, name) {
			ok = false
		}
	}
	return ok
}

// bringDownEach는 모든 인터페이스에 대해 개별 down을 시도하고 결과를 논리곱합니다
func bringDownEach(ctx context.Context, ops singleInterfaceOps, names []string) bool {
	ok := true
	for _, name := range names {
		if !ops.BringDownInterface(ctx, name) {
			ok = false
		}
	}
	return ok
}
