package youtube

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/titlelab/title-rotator-api/infrastructure/integrator/youtube/youtubeclient"
	"github.com/titlelab/title-rotator-api/internal/config"
	"github.com/titlelab/title-rotator-api/internal/domain"
)

// YouTubeIntegrator é a fachada da plataforma usada pelos casos de uso.
// Esconde snippet, quota e renovação de token atrás de duas operações.
type YouTubeIntegrator interface {
	UpdateVideoTitle(ctx context.Context, channelID, videoID, title string) error
	GetVideoMetrics(ctx context.Context, channelID, videoID string, since time.Time) (*domain.VideoMetrics, error)
}

type Integrator struct {
	cfg    *config.Config
	Client youtubeclient.Client
}

func New(cfg *config.Config, client youtubeclient.Client) *Integrator {
	return &Integrator{
		cfg:    cfg,
		Client: client,
	}
}

// UpdateVideoTitle troca o título do vídeo preservando o restante do
// snippet. Faz uma leitura antes da escrita porque o update da plataforma
// substitui o snippet por completo.
func (s *Integrator) UpdateVideoTitle(ctx context.Context, channelID, videoID, title string) error {
	video, err := s.Client.GetVideo(ctx, channelID, videoID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"channel_id": channelID,
			"video_id":   videoID,
			"error":      err.Error(),
		}).Error("youtube: failed to fetch video snippet before title update")
		return err
	}

	if video.Snippet.Title == title {
		logrus.WithFields(logrus.Fields{
			"video_id": videoID,
			"title":    title,
		}).Debug("youtube: video already carries the target title")
		return nil
	}

	video.Snippet.Title = title

	if err := s.Client.UpdateVideo(ctx, channelID, video); err != nil {
		logrus.WithFields(logrus.Fields{
			"channel_id": channelID,
			"video_id":   videoID,
			"error":      err.Error(),
		}).Error("youtube: failed to update video title")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"video_id": videoID,
		"title":    title,
	}).Debug("youtube: video title updated")

	return nil
}

// GetVideoMetrics devolve as métricas acumuladas do vídeo desde since.
func (s *Integrator) GetVideoMetrics(ctx context.Context, channelID, videoID string, since time.Time) (*domain.VideoMetrics, error) {
	metrics, err := s.Client.QueryVideoMetrics(ctx, channelID, videoID, since)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"channel_id": channelID,
			"video_id":   videoID,
			"error":      err.Error(),
		}).Error("youtube: failed to query video metrics")
		return nil, err
	}

	return metrics, nil
}
