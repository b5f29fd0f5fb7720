package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/titlelab/title-rotator-api/internal/domain"
	"github.com/titlelab/title-rotator-api/internal/usecases/managing"
	"github.com/titlelab/title-rotator-api/pkg/apiErrors"
	"github.com/titlelab/title-rotator-api/pkg/log"
)

func CreateTest(service managing.TestManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req domain.CreateTestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithError(err).Warn("tests: invalid create test payload")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "payload inválido", nil)
			return
		}

		response, err := service.CreateTest(r.Context(), &req)
		if err != nil {
			logger.WithFields(log.Fields{
				"video_id": req.VideoID,
				"error":    err.Error(),
			}).Error("tests: failed to create test")
			writeDomainError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"test_id":  response.Test.ID,
			"video_id": req.VideoID,
		}).Info("tests: test created")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("tests: failed to encode response")
		}
	})
}

func ListTests(service managing.TestManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		statuses := parseStatusFilter(r.URL.Query().Get("status"))

		tests, err := service.ListTests(r.Context(), statuses)
		if err != nil {
			logger.WithError(err).Error("tests: failed to list tests")
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tests); err != nil {
			logger.WithError(err).Error("tests: failed to encode response")
		}
	})
}

// parseStatusFilter aceita uma lista separada por vírgula, ex:
// ?status=ACTIVE,PAUSED. Vazio significa todos os status.
func parseStatusFilter(raw string) []domain.TestStatus {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	statuses := make([]domain.TestStatus, 0, len(parts))
	for _, part := range parts {
		status := domain.TestStatus(strings.ToUpper(strings.TrimSpace(part)))
		if status != "" {
			statuses = append(statuses, status)
		}
	}

	return statuses
}

func GetTest(service managing.TestManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		response, err := service.GetTest(r.Context(), id)
		if err != nil {
			logger.WithFields(log.Fields{
				"test_id": id,
				"error":   err.Error(),
			}).Warn("tests: failed to get test")
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("tests: failed to encode response")
		}
	})
}

func PauseTest(service managing.TestManager) http.Handler {
	return transitionHandler("pause", func(r *http.Request, id string) error {
		return service.PauseTest(r.Context(), id)
	})
}

func ResumeTest(service managing.TestManager) http.Handler {
	return transitionHandler("resume", func(r *http.Request, id string) error {
		return service.ResumeTest(r.Context(), id)
	})
}

func CancelTest(service managing.TestManager) http.Handler {
	return transitionHandler("cancel", func(r *http.Request, id string) error {
		return service.CancelTest(r.Context(), id)
	})
}

// transitionHandler fatoriza os endpoints de transição de status, que só
// diferem na operação aplicada
func transitionHandler(action string, apply func(r *http.Request, id string) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := apply(r, id); err != nil {
			logger.WithFields(log.Fields{
				"test_id": id,
				"action":  action,
				"error":   err.Error(),
			}).Warn("tests: status transition rejected")
			writeDomainError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"test_id": id,
			"action":  action,
		}).Info("tests: status transition applied")

		w.WriteHeader(http.StatusNoContent)
	})
}

func TriggerRotation(service managing.TestManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.TriggerRotation(r.Context(), id); err != nil {
			logger.WithFields(log.Fields{
				"test_id": id,
				"error":   err.Error(),
			}).Warn("tests: manual rotation rejected")
			writeDomainError(w, err)
			return
		}

		logger.WithField("test_id", id).Info("tests: manual rotation triggered")

		// a rotação roda em background serializada com o timer
		w.WriteHeader(http.StatusAccepted)
	})
}

func GetWinner(service managing.TestManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		response, err := service.GetWinner(r.Context(), id)
		if err != nil {
			logger.WithFields(log.Fields{
				"test_id": id,
				"error":   err.Error(),
			}).Warn("tests: failed to get winner")
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("tests: failed to encode response")
		}
	})
}

func ListRotationLogs(service managing.TestManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		logs, err := service.ListRotationLogs(r.Context(), id)
		if err != nil {
			logger.WithFields(log.Fields{
				"test_id": id,
				"error":   err.Error(),
			}).Warn("tests: failed to list rotation logs")
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(logs); err != nil {
			logger.WithError(err).Error("tests: failed to encode response")
		}
	})
}
