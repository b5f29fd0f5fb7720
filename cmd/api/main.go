package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/titlelab/title-rotator-api/infrastructure/database/postgres"
	"github.com/titlelab/title-rotator-api/infrastructure/integrator/youtube"
	"github.com/titlelab/title-rotator-api/infrastructure/integrator/youtube/youtubeclient"
	"github.com/titlelab/title-rotator-api/infrastructure/repository"
	"github.com/titlelab/title-rotator-api/internal/api"
	"github.com/titlelab/title-rotator-api/internal/config"
	"github.com/titlelab/title-rotator-api/internal/scheduler"
	"github.com/titlelab/title-rotator-api/internal/usecases/channeling"
	"github.com/titlelab/title-rotator-api/internal/usecases/managing"
	"github.com/titlelab/title-rotator-api/internal/usecases/polling"
	"github.com/titlelab/title-rotator-api/internal/usecases/rotating"
	"github.com/titlelab/title-rotator-api/pkg/cipher"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	tokenCipher, err := cipher.NewTokenCipher(cfg.YouTube.TokenCipherKey)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar a cifra de tokens")
	}

	testRepo := repository.NewTitleTestRepository(pgConn)
	variantRepo := repository.NewVariantRepository(pgConn)
	pollRepo := repository.NewAnalyticsPollRepository(pgConn)
	rotationRepo := repository.NewRotationRepository(pgConn)
	rotationLogRepo := repository.NewRotationLogRepository(pgConn)
	summaryRepo := repository.NewVariantSummaryRepository(pgConn)
	channelRepo := repository.NewChannelRepository(pgConn, tokenCipher)

	quotaTracker, err := youtubeclient.NewQuotaTracker(cfg.YouTube.QuotaDailyBudget, cfg.YouTube.QuotaResetTZ)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar o tracker de quota")
	}

	credentialManager := youtubeclient.NewCredentialManager(cfg, channelRepo)
	youtubeClient := youtubeclient.NewClient(cfg, credentialManager, quotaTracker)
	youtubeIntegrator := youtube.New(cfg, youtubeClient)

	rotationService := rotating.NewService(cfg, youtubeIntegrator, testRepo, variantRepo, pollRepo, rotationRepo)
	pollingService := polling.NewService(cfg, youtubeIntegrator, testRepo, variantRepo, pollRepo)

	schedulerService := scheduler.NewRotationSchedulerService(
		cfg,
		rotationService,
		pollingService,
		testRepo,
		variantRepo,
	)

	testService := managing.NewService(
		cfg,
		schedulerService,
		testRepo,
		variantRepo,
		channelRepo,
		summaryRepo,
		rotationLogRepo,
	)

	channelService := channeling.NewService(channelRepo)

	if err := schedulerService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de rotações")
	} else {
		logrus.Info("Agendador de rotações iniciado com sucesso")
	}

	server, err := api.New(cfg, testService, channelService, schedulerService, quotaTracker)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
