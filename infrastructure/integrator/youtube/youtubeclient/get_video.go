package youtubeclient

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/titlelab/title-rotator-api/infrastructure/integrator/youtube/domain"
)

// GetVideo busca o vídeo com o snippet completo. O snippet atual é
// pré-requisito do update de título, porque a escrita substitui o snippet
// inteiro e perderia descrição e tags se fosse parcial.
func (c *youtubeClient) GetVideo(ctx context.Context, channelID, videoID string) (*youtubedomain.VideoResource, error) {
	endpoint := c.cfg.YouTube.DataURL + "/videos"

	body, err := c.do(ctx, channelID, "videos.list", QuotaCostVideosList, func(token string) (*http.Request, error) {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("id", videoID)

		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	})
	if err != nil {
		return nil, err
	}

	var response youtubedomain.VideoListResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "erro no unmarshal da lista de vídeos")
	}

	if len(response.Items) == 0 {
		return nil, errors.Errorf("vídeo %s não encontrado na plataforma", videoID)
	}

	return &response.Items[0], nil
}

// UpdateVideo reescreve o snippet do vídeo. Operação cara de quota.
func (c *youtubeClient) UpdateVideo(ctx context.Context, channelID string, video *youtubedomain.VideoResource) error {
	endpoint := c.cfg.YouTube.DataURL + "/videos?part=snippet"

	payload, err := json.Marshal(video)
	if err != nil {
		return errors.Wrap(err, "erro no marshal do vídeo")
	}

	_, err = c.do(ctx, channelID, "videos.update", QuotaCostVideosUpdate, func(token string) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		return req, nil
	})

	return err
}
