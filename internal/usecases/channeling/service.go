package channeling

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/titlelab/title-rotator-api/infrastructure/repository"
	"github.com/titlelab/title-rotator-api/internal/domain"
	"github.com/titlelab/title-rotator-api/pkg/utils"
)

type RegisterChannelRequest struct {
	ExternalID   string `json:"external_id" validate:"required"`
	Name         string `json:"name" validate:"required,max=120"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthorizeChannelRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ChannelManager cobre o cadastro de canais e a troca de credenciais
type ChannelManager interface {
	RegisterChannel(ctx context.Context, req *RegisterChannelRequest) (*domain.Channel, error)
	GetChannel(ctx context.Context, channelID string) (*domain.Channel, error)
	ListChannels(ctx context.Context) ([]*domain.Channel, error)
	AuthorizeChannel(ctx context.Context, channelID string, req *AuthorizeChannelRequest) error
}

type Service struct {
	validate    *validator.Validate
	channelRepo repository.ChannelRepository
}

func NewService(channelRepo repository.ChannelRepository) *Service {
	return &Service{
		validate:    validator.New(),
		channelRepo: channelRepo,
	}
}

// RegisterChannel cadastra o canal e guarda a credencial inicial. O refresh
// token chega do fluxo OAuth feito pelo frontend e nunca é devolvido.
func (s *Service) RegisterChannel(ctx context.Context, req *RegisterChannelRequest) (*domain.Channel, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	channelID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro gerando id do canal")
	}

	channel := &domain.Channel{
		ID:         channelID,
		ExternalID: req.ExternalID,
		Name:       req.Name,
		Status:     domain.ChannelStatusActive,
		CreatedAt:  time.Now(),
	}

	if err := s.channelRepo.Create(ctx, channel); err != nil {
		return nil, err
	}

	credential := &domain.ChannelCredential{
		ChannelID:    channelID,
		RefreshToken: req.RefreshToken,
		UpdatedAt:    time.Now(),
	}

	if err := s.channelRepo.SaveCredential(ctx, credential); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"channel_id":  channelID,
		"external_id": req.ExternalID,
	}).Info("canal cadastrado")

	return channel, nil
}

func (s *Service) GetChannel(ctx context.Context, channelID string) (*domain.Channel, error) {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if channel == nil {
		return nil, errors.Wrapf(domain.ErrChannelNotFound, "canal %s", channelID)
	}

	return channel, nil
}

func (s *Service) ListChannels(ctx context.Context) ([]*domain.Channel, error) {
	return s.channelRepo.ListByStatus(ctx, []domain.ChannelStatus{
		domain.ChannelStatusActive,
		domain.ChannelStatusInactive,
	})
}

// AuthorizeChannel substitui a credencial do canal depois de uma nova
// autorização OAuth. É o caminho de recuperação dos testes pausados
// automaticamente por credencial revogada.
func (s *Service) AuthorizeChannel(ctx context.Context, channelID string, req *AuthorizeChannelRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return err
	}

	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return err
	}

	if channel == nil {
		return errors.Wrapf(domain.ErrChannelNotFound, "canal %s", channelID)
	}

	credential := &domain.ChannelCredential{
		ChannelID:    channelID,
		RefreshToken: req.RefreshToken,
		UpdatedAt:    time.Now(),
	}

	if err := s.channelRepo.SaveCredential(ctx, credential); err != nil {
		return err
	}

	logrus.WithField("channel_id", channelID).Info("credencial do canal renovada")

	return nil
}
