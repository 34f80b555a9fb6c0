package stubapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	cropsRequest "github.com/NadeeshaMedagama/modgoviya/crops/pkg/request"
	cropsResponse "github.com/NadeeshaMedagama/modgoviya/crops/pkg/response"
	"github.com/NadeeshaMedagama/modgoviya/internal/common"
	inErrors "github.com/NadeeshaMedagama/modgoviya/internal/errors"
	"github.com/NadeeshaMedagama/modgoviya/internal/log"
	"github.com/NadeeshaMedagama/modgoviya/internal/otel"
)

func (s *Server) FindCrops(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "StubApi FindCrops")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "StubApi FindCrops").Logger()

	userID, err := common.UserIDFromContext(c)
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusUnauthorized, err.Error())
		return
	}

	s.store.mu.Lock()
	crops := make([]cropsResponse.Crop, len(s.store.crops[userID]))
	copy(crops, s.store.crops[userID])
	s.store.mu.Unlock()

	logger.Info().Msgf("found %d crops", len(crops))
	writeSuccess(c, w, http.StatusOK, "successfully found crops", map[string]interface{}{
		"crops": crops,
	})
}

func (s *Server) CreateCrop(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "StubApi CreateCrop")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "StubApi CreateCrop").Logger()

	userID, err := common.UserIDFromContext(c)
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusUnauthorized, err.Error())
		return
	}

	reqBody := cropsRequest.CreateCrop{}
	if !s.decodeAndValidate(w, r.WithContext(c), span, &reqBody) {
		return
	}

	status := reqBody.Status
	if status == "" {
		status = "planted"
	}
	now := time.Now()
	crop := cropsResponse.Crop{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            reqBody.Name,
		Category:        reqBody.Category,
		PlantingDate:    reqBody.PlantingDate,
		ExpectedHarvest: reqBody.ExpectedHarvest,
		Status:          status,
		Notes:           reqBody.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	s.store.mu.Lock()
	s.store.crops[userID] = append(s.store.crops[userID], crop)
	s.store.mu.Unlock()

	logger.Info().Str(log.KeyCropID, crop.ID.String()).Msgf("created crop=%s", crop.Name)
	writeSuccess(c, w, http.StatusCreated, "successfully created crop", map[string]interface{}{
		"crop": crop,
	})
}

func (s *Server) UpdateCrop(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "StubApi UpdateCrop")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "StubApi UpdateCrop").Logger()

	userID, err := common.UserIDFromContext(c)
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusUnauthorized, err.Error())
		return
	}

	cropID, err := uuid.Parse(mux.Vars(r)["cropId"])
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err.Error())
		return
	}
	logger = logger.With().Str(log.KeyCropID, cropID.String()).Logger()

	reqBody := cropsRequest.UpdateCrop{}
	if !s.decodeAndValidate(w, r.WithContext(c), span, &reqBody) {
		return
	}

	s.store.mu.Lock()
	var updated *cropsResponse.Crop
	crops := s.store.crops[userID]
	for i := range crops {
		if crops[i].ID == cropID {
			crops[i].Status = reqBody.Status
			crops[i].Notes = reqBody.Notes
			crops[i].UpdatedAt = time.Now()
			updated = &crops[i]
			break
		}
	}
	var snapshot cropsResponse.Crop
	if updated != nil {
		snapshot = *updated
	}
	s.store.mu.Unlock()

	if updated == nil {
		logger.Error().Err(inErrors.ErrCropNotFound).Msg(inErrors.ErrCropNotFound.Error())
		writeFailed(c, w, http.StatusNotFound, inErrors.ErrCropNotFound.Error())
		return
	}

	logger.Info().Msgf("updated cropId=%s", cropID.String())
	writeSuccess(c, w, http.StatusOK, "successfully updated crop", map[string]interface{}{
		"crop": snapshot,
	})
}

func (s *Server) RemoveCrop(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "StubApi RemoveCrop")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "StubApi RemoveCrop").Logger()

	userID, err := common.UserIDFromContext(c)
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusUnauthorized, err.Error())
		return
	}

	cropID, err := uuid.Parse(mux.Vars(r)["cropId"])
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err.Error())
		return
	}
	logger = logger.With().Str(log.KeyCropID, cropID.String()).Logger()

	s.store.mu.Lock()
	crops := s.store.crops[userID]
	removed := false
	for i := range crops {
		if crops[i].ID == cropID {
			s.store.crops[userID] = append(crops[:i], crops[i+1:]...)
			removed = true
			break
		}
	}
	s.store.mu.Unlock()

	if !removed {
		logger.Error().Err(inErrors.ErrCropNotFound).Msg(inErrors.ErrCropNotFound.Error())
		writeFailed(c, w, http.StatusNotFound, inErrors.ErrCropNotFound.Error())
		return
	}

	logger.Info().Msgf("removed cropId=%s", cropID.String())
	writeSuccess(c, w, http.StatusOK, "successfully removed crop", map[string]interface{}{})
}
