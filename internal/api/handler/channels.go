package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/titlelab/title-rotator-api/internal/usecases/channeling"
	"github.com/titlelab/title-rotator-api/pkg/apiErrors"
	"github.com/titlelab/title-rotator-api/pkg/log"
)

func RegisterChannel(service channeling.ChannelManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req channeling.RegisterChannelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithError(err).Warn("channels: invalid register payload")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "payload inválido", nil)
			return
		}

		channel, err := service.RegisterChannel(r.Context(), &req)
		if err != nil {
			logger.WithFields(log.Fields{
				"external_id": req.ExternalID,
				"error":       err.Error(),
			}).Error("channels: failed to register channel")
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(channel); err != nil {
			logger.WithError(err).Error("channels: failed to encode response")
		}
	})
}

func ListChannels(service channeling.ChannelManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		channels, err := service.ListChannels(r.Context())
		if err != nil {
			logger.WithError(err).Error("channels: failed to list channels")
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(channels); err != nil {
			logger.WithError(err).Error("channels: failed to encode response")
		}
	})
}

func GetChannel(service channeling.ChannelManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		channel, err := service.GetChannel(r.Context(), id)
		if err != nil {
			logger.WithFields(log.Fields{
				"channel_id": id,
				"error":      err.Error(),
			}).Warn("channels: failed to get channel")
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(channel); err != nil {
			logger.WithError(err).Error("channels: failed to encode response")
		}
	})
}

// AuthorizeChannel troca a credencial OAuth do canal. É o endpoint chamado
// depois do fluxo de reautorização quando um teste pausou por credencial
// revogada.
func AuthorizeChannel(service channeling.ChannelManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req channeling.AuthorizeChannelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithError(err).Warn("channels: invalid authorize payload")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "payload inválido", nil)
			return
		}

		if err := service.AuthorizeChannel(r.Context(), id, &req); err != nil {
			logger.WithFields(log.Fields{
				"channel_id": id,
				"error":      err.Error(),
			}).Error("channels: failed to authorize channel")
			writeDomainError(w, err)
			return
		}

		logger.WithField("channel_id", id).Info("channels: credential replaced")

		w.WriteHeader(http.StatusNoContent)
	})
}
