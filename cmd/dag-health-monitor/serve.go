package main

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/darkkaiser/dag-health-monitor/internal/config"
	"github.com/darkkaiser/dag-health-monitor/internal/metrics"
	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
	"github.com/darkkaiser/dag-health-monitor/internal/pkg/version"
	"github.com/darkkaiser/dag-health-monitor/internal/probe"
	"github.com/darkkaiser/dag-health-monitor/internal/service"
	"github.com/darkkaiser/dag-health-monitor/internal/service/api"
	"github.com/darkkaiser/dag-health-monitor/internal/service/healthcheck"
	"github.com/darkkaiser/dag-health-monitor/internal/service/scheduler"
	applog "github.com/darkkaiser/dag-health-monitor/pkg/log"
)

var configFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "HTTP API 서버와 예약 헬스체크를 실행합니다",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
		appConfig, err := config.LoadWithFile(configFile)
		if err != nil {
			return err
		}

		// 2. 로그 시스템 초기화
		logCloser, err := applog.Setup(logOptions(appConfig))
		if err != nil {
			return apperrors.Wrap(err, apperrors.System, "로그 시스템 초기화에 실패했습니다")
		}
		defer logCloser.Close()

		applog.SetDebugMode(appConfig.Debug)

		buildInfo := version.Get()
		fmt.Fprintf(cmd.OutOrStdout(), banner, buildInfo.Version)

		applog.WithComponentAndFields(component, applog.Fields{
			"version": buildInfo.String(),
			"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
			"store":   appConfig.Store.Driver,
		}).Info("서버 초기화 시작")

		for _, w := range appConfig.VerifyRecommendations() {
			applog.WithComponent(component).Warn(w)
		}

		serviceStopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(serviceStopCtx, appConfig, buildInfo)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&configFile, "config", "c", config.DefaultFilename, "설정 파일 경로 (빈 값이면 기본값과 환경 변수만 사용)")
}

func logOptions(cfg *config.AppConfig) applog.Options {
	var opts applog.Options
	if cfg.Debug {
		opts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		opts = applog.NewProductionOptions(config.AppName)
	}

	opts.Dir = cfg.Log.Dir
	if cfg.Log.MaxAgeDays > 0 {
		opts.MaxAge = cfg.Log.MaxAgeDays
	}
	if cfg.Log.Console {
		opts.EnableConsoleLog = true
	}
	if cfg.Log.Level != "" {
		if lvl, err := applog.ParseLevel(cfg.Log.Level); err == nil {
			opts.Level = lvl
		}
	}
	return opts
}

// serve 구성 요소를 조립하고 서비스를 시작한 뒤, serviceStopCtx가 취소되면 모든 서비스의 종료를 기다립니다.
func serve(serviceStopCtx context.Context, appConfig *config.AppConfig, buildInfo version.Info) error {
	// 1. 저장소, 이벤트, 알림
	st, err := newStore(serviceStopCtx, appConfig.Store)
	if err != nil {
		return err
	}
	defer closeQuietly("store", st)

	publisher, err := newPublisher(appConfig.Events)
	if err != nil {
		return err
	}
	defer closeQuietly("publisher", publisher)

	notifier, err := newNotifier(appConfig.Alert, appConfig.Debug)
	if err != nil {
		return err
	}

	// 2. 헬스체크 파이프라인
	var collector *metrics.Collector
	proberOpts := []probe.Option{}
	checkerOpts := []healthcheck.Option{
		healthcheck.WithPublisher(publisher),
		healthcheck.WithNotifier(notifier),
	}
	if appConfig.Metrics.Enabled {
		collector = metrics.New()
		proberOpts = append(proberOpts, probe.WithRecorder(collector))
		checkerOpts = append(checkerOpts, healthcheck.WithRecorder(collector))
	}

	prober := probe.New(probe.Config{
		Timeout:        appConfig.Probe.Timeout,
		MaxConcurrency: appConfig.Probe.MaxConcurrency,
		UserAgent:      userAgent(buildInfo),
	}, proberOpts...)
	checker := healthcheck.NewService(prober, st, checkerOpts...)

	// 3. 서비스 시작
	apiService := api.NewService(appConfig, checker, checker, collector, buildInfo)
	schedulerService := scheduler.NewService(appConfig.Scheduler.Jobs, checker,
		scheduler.WithJobTimeout(appConfig.HTTP.RequestTimeout),
	)

	ctx, cancel := context.WithCancel(serviceStopCtx)
	defer cancel()
	serviceStopWG := &sync.WaitGroup{}

	services := []service.Service{schedulerService, apiService}
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(ctx, serviceStopWG); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel()
			serviceStopWG.Wait()
			return err
		}
	}

	applog.WithComponent(component).Info("서버 가동 완료")

	<-ctx.Done()

	applog.WithComponent(component).Info("종료 신호 수신: 서비스를 종료합니다")
	cancel()
	serviceStopWG.Wait()

	return nil
}
