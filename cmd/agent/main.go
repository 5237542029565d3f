package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"netstate-agent/internal/application/polling"
	"netstate-agent/internal/application/usecases"
	"netstate-agent/internal/infrastructure/config"
	"netstate-agent/internal/infrastructure/container"
	"netstate-agent/internal/infrastructure/metrics"
)

const version = "0.3.0"

func main() {
	// 로거 초기화
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// LOG_LEVEL 환경 변수 설정
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr != "" {
		logLevel, err := logrus.ParseLevel(logLevelStr)
		if err != nil {
			logger.WithError(err).Warnf("Unknown LOG_LEVEL value: %s. Using default Info level.", logLevelStr)
			logger.SetLevel(logrus.InfoLevel)
		} else {
			logger.SetLevel(logLevel)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	// 설정 로드
	configLoader := config.NewEnvironmentConfigLoader()
	cfg, err := configLoader.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// 의존성 주입 컨테이너 생성
	appContainer, err := container.NewContainer(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create dependency injection container")
	}
	defer func() {
		if err := appContainer.Close(); err != nil {
			logger.WithError(err).Error("Failed to cleanup container")
		}
	}()

	app := NewApplication(appContainer, logger)
	if err := app.Run(); err != nil {
		logger.WithError(err).Fatal("Failed to run application")
	}
}

// Application은 메인 애플리케이션 구조체입니다
type Application struct {
	container    *container.Container
	logger       *logrus.Logger
	healthServer *http.Server
}

// NewApplication은 새로운 Application을 생성합니다
func NewApplication(container *container.Container, logger *logrus.Logger) *Application {
	return &Application{
		container: container,
		logger:    logger,
	}
}

// Run은 애플리케이션을 실행합니다
func (a *Application) Run() error {
	cfg := a.container.GetConfig()

	// OS 감지는 정보 제공용이다. 백엔드 선택은 가용성 프로브가 결정한다.
	osID, err := a.container.GetOSDetector().DetectOS()
	if err != nil {
		a.logger.WithError(err).Warn("Failed to detect operating system")
		osID = "unknown"
	}
	a.logger.WithField("os_id", osID).Info("Operating system detected")
	metrics.SetAgentInfo(version, osID, cfg.Agent.NodeName)

	// 원샷 모드: 상태 파일을 한 번 렌더링/적용(또는 비활성화)하고 종료한다
	if cfg.OneShot() {
		if cfg.Agent.Teardown {
			return a.runOneShotTeardown(cfg)
		}
		return a.runOneShot(cfg)
	}

	return a.runDaemon(cfg)
}

// runOneShot은 상태 파일 하나를 적용하고 종료합니다
func (a *Application) runOneShot(cfg *config.Config) error {
	a.logger.WithFields(logrus.Fields{
		"state_file": cfg.Agent.StateFile,
		"target":     cfg.Agent.TargetRoot,
	}).Info("Running in one-shot mode")

	state, err := a.container.GetStatefileLoader().Load(cfg.Agent.StateFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// 대상 루트가 라이브 시스템이 아니면 렌더링만 수행한다
	renderOnly := cfg.Agent.TargetRoot != "" && cfg.Agent.TargetRoot != "/"

	output, err := a.container.GetApplyNetworkUseCase().Execute(ctx, usecases.ApplyNetworkInput{
		State:             state,
		Target:            cfg.Agent.TargetRoot,
		RendererPriority:  cfg.Agent.RendererPriority,
		ActivatorPriority: cfg.Agent.ActivatorPriority,
		RenderOnly:        renderOnly,
	})
	if err != nil {
		return err
	}

	a.logger.WithFields(logrus.Fields{
		"renderer":  output.RendererName,
		"activator": output.ActivatorName,
	}).Info("One-shot apply finished")
	return nil
}

// runOneShotTeardown은 상태 파일에 기술된 인터페이스들을 비활성화하고 종료합니다
func (a *Application) runOneShotTeardown(cfg *config.Config) error {
	a.logger.WithFields(logrus.Fields{
		"state_file": cfg.Agent.StateFile,
		"target":     cfg.Agent.TargetRoot,
	}).Info("Running in one-shot teardown mode")

	state, err := a.container.GetStatefileLoader().Load(cfg.Agent.StateFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	output, err := a.container.GetTeardownNetworkUseCase().Execute(ctx, usecases.TeardownNetworkInput{
		State:             state,
		Target:            cfg.Agent.TargetRoot,
		ActivatorPriority: cfg.Agent.ActivatorPriority,
	})
	if err != nil {
		return err
	}

	a.logger.WithField("activator", output.ActivatorName).Info("One-shot teardown finished")
	return nil
}

// runDaemon은 데이터베이스 폴링 데몬을 실행합니다
func (a *Application) runDaemon(cfg *config.Config) error {
	if err := a.startHealthServer(cfg.Health.Port); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		a.logger.Info("Received shutdown signal")
		cancel()
	}()

	strategy := polling.NewExponentialBackoffStrategy(
		cfg.Agent.PollInterval,
		10*cfg.Agent.PollInterval,
		2.0,
		a.logger,
	)
	pollingController := polling.NewPollingController(strategy, a.logger)

	syncUseCase := a.container.GetSyncNetworkUseCase()

	a.logger.WithFields(logrus.Fields{
		"node":          cfg.Agent.NodeName,
		"poll_interval": cfg.Agent.PollInterval,
	}).Info("netstate agent started")

	return pollingController.Start(ctx, func(ctx context.Context) error {
		_, err := syncUseCase.Execute(ctx, usecases.SyncNetworkInput{
			NodeName:          cfg.Agent.NodeName,
			Target:            cfg.Agent.TargetRoot,
			RendererPriority:  cfg.Agent.RendererPriority,
			ActivatorPriority: cfg.Agent.ActivatorPriority,
		})
		return err
	})
}

// startHealthServer는 헬스체크 서버를 시작합니다
func (a *Application) startHealthServer(port string) error {
	mux := http.NewServeMux()
	mux.Handle("/", a.container.GetHealthService())
	mux.Handle("/metrics", promhttp.Handler())

	a.healthServer = &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		a.logger.WithField("port", port).Info("Health check server started (with /metrics)")
		if err := a.healthServer.ListenAndServe(); err != http.ErrServerClosed {
			a.logger.WithError(err).Error("Health check server failed")
		}
	}()

	return nil
}
