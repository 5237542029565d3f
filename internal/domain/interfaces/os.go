package interfaces

import (
	"context"
	"os"
	"time"
)

// CommandExecutor는 시스템 명령을 실행하는 인터페이스입니다
type CommandExecutor interface {
	// Execute는 명령을 실행하고 stdout/stderr를 반환합니다.
	// 0이 아닌 종료 코드는 에러로 반환되며 stderr가 에러에 포함됩니다.
	Execute(ctx context.Context, command string, args ...string) (stdout []byte, stderr []byte, err error)

	// ExecuteWithTimeout은 타임아웃을 적용하여 명령을 실행합니다
	ExecuteWithTimeout(ctx context.Context, timeout time.Duration, command string, args ...string) (stdout []byte, stderr []byte, err error)
}

// CommandLocator는 실행 파일의 존재 여부를 확인하는 인터페이스입니다.
// target이 비어 있지 않으면 해당 루트 아래에서 탐색합니다 (오프라인 이미지 설정용).
type CommandLocator interface {
	// Which는 탐색 경로에서 실행 파일을 찾아 경로를 반환합니다. 없으면 빈 문자열을 반환합니다.
	Which(tool string, searchPaths []string, target string) string
}

// FileSystem은 파일 시스템 작업을 추상화하는 인터페이스입니다
type FileSystem interface {
	// ReadFile은 파일을 읽습니다
	ReadFile(path string) ([]byte, error)

	// WriteFile은 필요한 상위 디렉토리를 만든 뒤 파일에 데이터를 씁니다
	WriteFile(path string, data []byte, perm os.FileMode) error

	// Exists는 파일이나 디렉토리가 존재하는지 확인합니다
	Exists(path string) bool

	// IsDir은 경로가 디렉토리인지 확인합니다
	IsDir(path string) bool

	// MkdirAll은 디렉토리를 재귀적으로 생성합니다
	MkdirAll(path string, perm os.FileMode) error

	// Remove는 파일이나 디렉토리를 삭제합니다
	Remove(path string) error

	// ListFiles는 디렉토리의 파일 목록을 반환합니다
	ListFiles(path string) ([]string, error)
}

// Clock은 시간 관련 작업을 추상화하는 인터페이스입니다
type Clock interface {
	// Now는 현재 시간을 반환합니다
	Now() time.Time
}

// OSDetector는 운영체제를 감지하는 인터페이스입니다.
// 백엔드 선택은 가용성 프로브가 담당하므로 감지 결과는 메트릭/헬스 표시에만 쓰입니다.
type OSDetector interface {
	// DetectOS는 /etc/os-release의 ID 값을 반환합니다
	DetectOS() (string, error)
}
