package usecases

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"netstate-agent/internal/domain/entities"
	"netstate-agent/internal/domain/errors"
	"netstate-agent/internal/infrastructure/activators"
	"netstate-agent/internal/infrastructure/adapters"
	"netstate-agent/internal/infrastructure/health"
	"netstate-agent/internal/infrastructure/renderers"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeFileSystem은 인메모리 FileSystem 구현체입니다
type fakeFileSystem struct {
	files map[string][]byte
	dirs  map[string]bool
}

func newFakeFileSystem() *fakeFileSystem {
	return &fakeFileSystem{files: make(map[string][]byte), dirs: make(map[string]bool)}
}

func (f *fakeFileSystem) ReadFile(path string) ([]byte, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (f *fakeFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	f.files[path] = data
	return nil
}

func (f *fakeFileSystem) Exists(path string) bool {
	_, ok := f.files[path]
	return ok || f.dirs[path]
}

func (f *fakeFileSystem) IsDir(path string) bool { return f.dirs[path] }

func (f *fakeFileSystem) MkdirAll(path string, perm os.FileMode) error {
	f.dirs[path] = true
	return nil
}

func (f *fakeFileSystem) Remove(path string) error {
	delete(f.files, path)
	return nil
}

func (f *fakeFileSystem) ListFiles(path string) ([]string, error) {
	var names []string
	for p := range f.files {
		if strings.HasPrefix(p, path+"/") {
			names = append(names, strings.TrimPrefix(p, path+"/"))
		}
	}
	return names, nil
}

// fakeLocator는 등록된 도구만 찾아주는 CommandLocator입니다
type fakeLocator struct {
	tools map[string]bool
}

func (l *fakeLocator) Which(tool string, searchPaths []string, target string) string {
	if l.tools[tool] {
		return "/sbin/" + tool
	}
	return ""
}

// MockCommandExecutor는 테스트용 Mock CommandExecutor입니다
type MockCommandExecutor struct {
	mock.Mock
}

func (m *MockCommandExecutor) Execute(ctx context.Context, command string, args ...string) ([]byte, []byte, error) {
	argList := []interface{}{ctx, command}
	for _, arg := range args {
		argList = append(argList, arg)
	}
	mockArgs := m.Called(argList...)
	return mockArgs.Get(0).([]byte), mockArgs.Get(1).([]byte), mockArgs.Error(2)
}

func (m *MockCommandExecutor) ExecuteWithTimeout(ctx context.Context, timeout time.Duration, command string, args ...string) ([]byte, []byte, error) {
	argList := []interface{}{ctx, timeout, command}
	for _, arg := range args {
		argList = append(argList, arg)
	}
	mockArgs := m.Called(argList...)
	return mockArgs.Get(0).([]byte), mockArgs.Get(1).([]byte), mockArgs.Error(2)
}

// MockRepository는 테스트용 NetworkStateRepository입니다
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetDesiredState(ctx context.Context, nodeName string) (*entities.NetworkState, int64, error) {
	args := m.Called(ctx, nodeName)
	var state *entities.NetworkState
	if args.Get(0) != nil {
		state = args.Get(0).(*entities.NetworkState)
	}
	return state, args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) GetAppliedGeneration(ctx context.Context, nodeName string) (int64, error) {
	args := m.Called(ctx, nodeName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) MarkApplied(ctx context.Context, nodeName string, generation int64, success bool) error {
	args := m.Called(ctx, nodeName, generation, success)
	return args.Error(0)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

// debianEnv는 ifupdown 백엔드만 사용 가능한 테스트 환경을 만듭니다
func debianEnv() (*fakeFileSystem, *fakeLocator) {
	fs := newFakeFileSystem()
	fs.dirs["/etc/network"] = true
	locator := &fakeLocator{tools: map[string]bool{"ifup": true, "ifdown": true}}
	return fs, locator
}

func testState() *entities.NetworkState {
	return &entities.NetworkState{
		Interfaces: []entities.Interface{
			{Name: "lo", Type: entities.TypeLoopback},
			{
				Name: "eth0",
				Type: entities.TypePhysical,
				Subnets: []entities.Subnet{
					{Type: entities.SubnetDHCP4},
				},
			},
		},
	}
}

func buildApplyUseCase(fs *fakeFileSystem, locator *fakeLocator, executor *MockCommandExecutor) *ApplyNetworkUseCase {
	logger := quietLogger()
	rendererRegistry := renderers.NewRegistry(fs, locator, logger)
	activatorRegistry := activators.NewRegistry(fs, locator, executor, 0, logger)
	return NewApplyNetworkUseCase(rendererRegistry, activatorRegistry, logger)
}

func TestApplyNetworkUseCase_Execute(t *testing.T) {
	fs, locator := debianEnv()
	executor := new(MockCommandExecutor)
	// 루프백은 활성화 대상에서 제외된다
	executor.On("ExecuteWithTimeout", mock.Anything, 30*time.Second, "ifup", "eth0").
		Return([]byte(""), []byte(""), nil).Once()

	uc := buildApplyUseCase(fs, locator, executor)

	output, err := uc.Execute(context.Background(), ApplyNetworkInput{State: testState()})
	require.NoError(t, err)

	assert.Equal(t, "eni", output.RendererName)
	assert.Equal(t, "eni", output.ActivatorName)
	assert.True(t, output.Activated)
	assert.Contains(t, fs.files, "/etc/network/interfaces.d/eth0.cfg")
	executor.AssertExpectations(t)
}

func TestApplyNetworkUseCase_RenderOnly(t *testing.T) {
	fs, locator := debianEnv()
	executor := new(MockCommandExecutor)

	uc := buildApplyUseCase(fs, locator, executor)

	output, err := uc.Execute(context.Background(), ApplyNetworkInput{
		State:      testState(),
		Target:     "/mnt/image",
		RenderOnly: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "eni", output.RendererName)
	assert.Empty(t, output.ActivatorName)
	assert.False(t, output.Activated)
	assert.Contains(t, fs.files, "/mnt/image/etc/network/interfaces.d/eth0.cfg")
	// 활성화 명령은 한 번도 실행되지 않는다
	assert.Empty(t, executor.Calls)
}

func TestApplyNetworkUseCase_NoBackendAvailable(t *testing.T) {
	uc := buildApplyUseCase(newFakeFileSystem(), &fakeLocator{}, new(MockCommandExecutor))

	_, err := uc.Execute(context.Background(), ApplyNetworkInput{State: testState()})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestApplyNetworkUseCase_InvalidState(t *testing.T) {
	fs, locator := debianEnv()
	uc := buildApplyUseCase(fs, locator, new(MockCommandExecutor))

	invalid := &entities.NetworkState{
		Interfaces: []entities.Interface{
			{Name: "eth0", Type: entities.TypePhysical},
			{Name: "eth0", Type: entities.TypePhysical},
		},
	}

	_, err := uc.Execute(context.Background(), ApplyNetworkInput{State: invalid})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestApplyNetworkUseCase_ActivationFailure(t *testing.T) {
	fs, locator := debianEnv()
	executor := new(MockCommandExecutor)
	executor.On("ExecuteWithTimeout", mock.Anything, 30*time.Second, "ifup", "eth0").
		Return([]byte(""), []byte("ifup: failed"), assert.AnError).Once()

	uc := buildApplyUseCase(fs, locator, executor)

	output, err := uc.Execute(context.Background(), ApplyNetworkInput{State: testState()})
	require.Error(t, err)
	assert.True(t, errors.IsNetworkError(err))
	assert.False(t, output.Activated)
}

func TestTeardownNetworkUseCase_Execute(t *testing.T) {
	fs, locator := debianEnv()
	executor := new(MockCommandExecutor)
	// 전체 비활성화는 루프백을 포함한 모든 인터페이스를 대상으로 한다
	executor.On("ExecuteWithTimeout", mock.Anything, 30*time.Second, "ifdown", "lo").
		Return([]byte(""), []byte(""), nil).Once()
	executor.On("ExecuteWithTimeout", mock.Anything, 30*time.Second, "ifdown", "eth0").
		Return([]byte(""), []byte(""), nil).Once()

	logger := quietLogger()
	uc := NewTeardownNetworkUseCase(activators.NewRegistry(fs, locator, executor, 0, logger), logger)

	output, err := uc.Execute(context.Background(), TeardownNetworkInput{State: testState()})
	require.NoError(t, err)
	assert.True(t, output.Deactivated)
	assert.Equal(t, "eni", output.ActivatorName)
	executor.AssertExpectations(t)
}

func TestSyncNetworkUseCase_Execute(t *testing.T) {
	newHealth := func() *health.HealthService {
		return health.NewHealthService(adapters.NewRealClock(), quietLogger())
	}

	t.Run("새 세대를 적용하고 결과를 기록", func(t *testing.T) {
		fs, locator := debianEnv()
		executor := new(MockCommandExecutor)
		executor.On("ExecuteWithTimeout", mock.Anything, 30*time.Second, "ifup", "eth0").
			Return([]byte(""), []byte(""), nil).Once()

		repo := new(MockRepository)
		repo.On("GetDesiredState", mock.Anything, "node-1").
			Return(testState(), int64(3), nil).Once()
		repo.On("GetAppliedGeneration", mock.Anything, "node-1").
			Return(int64(2), nil).Once()
		repo.On("MarkApplied", mock.Anything, "node-1", int64(3), true).
			Return(nil).Once()

		uc := NewSyncNetworkUseCase(repo, buildApplyUseCase(fs, locator, executor), newHealth(), quietLogger())

		output, err := uc.Execute(context.Background(), SyncNetworkInput{NodeName: "node-1"})
		require.NoError(t, err)
		assert.True(t, output.Applied)
		assert.Equal(t, int64(3), output.Generation)
		repo.AssertExpectations(t)
		executor.AssertExpectations(t)
	})

	t.Run("이미 적용된 세대는 건너뜀", func(t *testing.T) {
		fs, locator := debianEnv()
		repo := new(MockRepository)
		repo.On("GetDesiredState", mock.Anything, "node-1").
			Return(testState(), int64(2), nil).Once()
		repo.On("GetAppliedGeneration", mock.Anything, "node-1").
			Return(int64(2), nil).Once()

		uc := NewSyncNetworkUseCase(repo, buildApplyUseCase(fs, locator, new(MockCommandExecutor)), newHealth(), quietLogger())

		output, err := uc.Execute(context.Background(), SyncNetworkInput{NodeName: "node-1"})
		require.NoError(t, err)
		assert.False(t, output.Applied)
		repo.AssertExpectations(t)
	})

	t.Run("등록된 상태가 없으면 정상 종료", func(t *testing.T) {
		fs, locator := debianEnv()
		repo := new(MockRepository)
		repo.On("GetDesiredState", mock.Anything, "node-1").
			Return(nil, int64(0), errors.NewNotFoundError("목표 상태를 찾을 수 없음: node=node-1")).Once()

		uc := NewSyncNetworkUseCase(repo, buildApplyUseCase(fs, locator, new(MockCommandExecutor)), newHealth(), quietLogger())

		output, err := uc.Execute(context.Background(), SyncNetworkInput{NodeName: "node-1"})
		require.NoError(t, err)
		assert.False(t, output.Applied)
		repo.AssertExpectations(t)
	})

	t.Run("적용 실패도 기록됨", func(t *testing.T) {
		fs, locator := debianEnv()
		executor := new(MockCommandExecutor)
		executor.On("ExecuteWithTimeout", mock.Anything, 30*time.Second, "ifup", "eth0").
			Return([]byte(""), []byte(""), assert.AnError).Once()

		repo := new(MockRepository)
		repo.On("GetDesiredState", mock.Anything, "node-1").
			Return(testState(), int64(5), nil).Once()
		repo.On("GetAppliedGeneration", mock.Anything, "node-1").
			Return(int64(0), nil).Once()
		repo.On("MarkApplied", mock.Anything, "node-1", int64(5), false).
			Return(nil).Once()

		uc := NewSyncNetworkUseCase(repo, buildApplyUseCase(fs, locator, executor), newHealth(), quietLogger())

		_, err := uc.Execute(context.Background(), SyncNetworkInput{NodeName: "node-1"})
		require.Error(t, err)
		repo.AssertExpectations(t)
	})
}
