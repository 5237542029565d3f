package container

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"

	"netstate-agent/internal/application/usecases"
	"netstate-agent/internal/domain/interfaces"
	"netstate-agent/internal/infrastructure/activators"
	"netstate-agent/internal/infrastructure/adapters"
	"netstate-agent/internal/infrastructure/config"
	"netstate-agent/internal/infrastructure/health"
	"netstate-agent/internal/infrastructure/persistence"
	"netstate-agent/internal/infrastructure/renderers"
	"netstate-agent/internal/infrastructure/statefile"
)

// Container는 의존성 주입을 관리하는 컨테이너입니다
type Container struct {
	config *config.Config
	logger *logrus.Logger

	// 인프라스트럭처 어댑터들
	fileSystem      interfaces.FileSystem
	commandExecutor interfaces.CommandExecutor
	commandLocator  interfaces.CommandLocator
	clock           interfaces.Clock
	osDetector      interfaces.OSDetector

	// 백엔드 레지스트리들
	rendererRegistry  *renderers.Registry
	activatorRegistry *activators.Registry

	// 서비스들
	healthService   *health.HealthService
	statefileLoader *statefile.Loader

	// 레포지토리 (폴링 모드에서만 초기화)
	repository interfaces.NetworkStateRepository

	// 유스케이스
	applyNetworkUseCase    *usecases.ApplyNetworkUseCase
	teardownNetworkUseCase *usecases.TeardownNetworkUseCase
	syncNetworkUseCase     *usecases.SyncNetworkUseCase

	// 데이터베이스
	db *sql.DB
}

// NewContainer는 새로운 Container를 생성합니다.
// 원샷 모드에서는 데이터베이스 연결을 만들지 않습니다.
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	container := &Container{
		config: cfg,
		logger: logger,
	}

	if err := container.initializeInfrastructure(); err != nil {
		return nil, err
	}

	if err := container.initializeServices(); err != nil {
		return nil, err
	}

	if err := container.initializeUseCases(); err != nil {
		return nil, err
	}

	return container, nil
}

// initializeInfrastructure는 인프라스트럭처 컴포넌트들을 초기화합니다
func (c *Container) initializeInfrastructure() error {
	// 기본 어댑터들 초기화
	c.fileSystem = adapters.NewRealFileSystem()
	c.commandExecutor = adapters.NewRealCommandExecutor()
	c.commandLocator = adapters.NewRealCommandLocator()
	c.clock = adapters.NewRealClock()
	c.osDetector = adapters.NewRealOSDetector(c.fileSystem)

	// 백엔드 레지스트리 초기화
	c.rendererRegistry = renderers.NewRegistry(c.fileSystem, c.commandLocator, c.logger)
	c.activatorRegistry = activators.NewRegistry(c.fileSystem, c.commandLocator, c.commandExecutor, c.config.Agent.CommandTimeout, c.logger)

	// 원샷 모드는 데이터베이스를 쓰지 않는다
	if c.config.OneShot() {
		return nil
	}

	// 데이터베이스 연결
	db, err := sql.Open("mysql", c.buildDSN())
	if err != nil {
		return err
	}

	// 연결 풀 설정
	db.SetMaxOpenConns(c.config.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.config.Database.MaxIdleConns)
	db.SetConnMaxLifetime(c.config.Database.MaxLifetime)

	// 연결 테스트
	if err := db.Ping(); err != nil {
		return err
	}

	c.db = db
	c.repository = persistence.NewMySQLRepository(c.db, c.logger)

	return nil
}

// initializeServices는 서비스들을 초기화합니다
func (c *Container) initializeServices() error {
	c.healthService = health.NewHealthService(c.clock, c.logger)
	c.statefileLoader = statefile.NewLoader(c.fileSystem)
	return nil
}

// initializeUseCases는 유스케이스들을 초기화합니다
func (c *Container) initializeUseCases() error {
	c.applyNetworkUseCase = usecases.NewApplyNetworkUseCase(
		c.rendererRegistry,
		c.activatorRegistry,
		c.logger,
	)

	c.teardownNetworkUseCase = usecases.NewTeardownNetworkUseCase(
		c.activatorRegistry,
		c.logger,
	)

	if c.repository != nil {
		c.syncNetworkUseCase = usecases.NewSyncNetworkUseCase(
			c.repository,
			c.applyNetworkUseCase,
			c.healthService,
			c.logger,
		)
	}

	return nil
}

// buildDSN은 데이터베이스 연결 문자열을 생성합니다
func (c *Container) buildDSN() string {
	cfg := c.config.Database
	return cfg.User + ":" + cfg.Password + "@tcp(" + cfg.Host + ":" + cfg.Port + ")/" + cfg.Database + "?parseTime=true"
}

// GetConfig는 설정을 반환합니다
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetHealthService는 헬스 서비스를 반환합니다
func (c *Container) GetHealthService() *health.HealthService {
	return c.healthService
}

// GetOSDetector는 OS 감지기를 반환합니다
func (c *Container) GetOSDetector() interfaces.OSDetector {
	return c.osDetector
}

// GetStatefileLoader는 상태 파일 로더를 반환합니다
func (c *Container) GetStatefileLoader() *statefile.Loader {
	return c.statefileLoader
}

// GetApplyNetworkUseCase는 네트워크 적용 유스케이스를 반환합니다
func (c *Container) GetApplyNetworkUseCase() *usecases.ApplyNetworkUseCase {
	return c.applyNetworkUseCase
}

// GetTeardownNetworkUseCase는 네트워크 비활성화 유스케이스를 반환합니다
func (c *Container) GetTeardownNetworkUseCase() *usecases.TeardownNetworkUseCase {
	return c.teardownNetworkUseCase
}

// GetSyncNetworkUseCase는 폴링 동기화 유스케이스를 반환합니다 (원샷 모드에서는 nil)
func (c *Container) GetSyncNetworkUseCase() *usecases.SyncNetworkUseCase {
	return c.syncNetworkUseCase
}

// Close는 컨테이너를 정리합니다
func (c *Container) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
