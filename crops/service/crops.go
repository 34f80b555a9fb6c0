package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NadeeshaMedagama/modgoviya/crops/pkg/request"
	"github.com/NadeeshaMedagama/modgoviya/crops/pkg/response"
	"github.com/NadeeshaMedagama/modgoviya/internal/api"
	"github.com/NadeeshaMedagama/modgoviya/internal/log"
	"github.com/NadeeshaMedagama/modgoviya/internal/otel"
)

// CropService manages the signed-in shopper's crop calendar over the remote
// /crops endpoints.
type CropService struct {
	client *api.Client
}

func NewCropService(client *api.Client) CropService {
	return CropService{client: client}
}

type cropData struct {
	Crop response.Crop `json:"crop"`
}

func (svc CropService) FindCrops(c context.Context) ([]response.Crop, error) {
	c, span := otel.Tracer.Start(c, "CropService FindCrops")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CropService FindCrops").
		Str(log.KeyProcess, "finding crops").
		Logger()

	logger.Info().Msg("finding crops")
	data := struct {
		Crops []response.Crop `json:"crops"`
	}{}
	c = logger.WithContext(c)
	if err := svc.client.Get(c, "/crops", &data); err != nil {
		err = fmt.Errorf("failed finding crops with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d crops", len(data.Crops))
	return data.Crops, nil
}

func (svc CropService) CreateCrop(
	c context.Context,
	param request.CreateCrop,
) (response.Crop, error) {
	c, span := otel.Tracer.Start(c, "CropService CreateCrop")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CropService CreateCrop").
		Str(log.KeyProcess, "creating crop").
		Str("crop", param.Name).
		Logger()

	logger.Info().Msgf("creating crop=%s", param.Name)
	data := cropData{}
	c = logger.WithContext(c)
	if err := svc.client.Post(c, "/crops", param, &data); err != nil {
		err = fmt.Errorf("failed creating crop=%s with error=%w", param.Name, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Crop{}, err
	}
	logger.Info().Msgf("created crop=%s", param.Name)
	return data.Crop, nil
}

func (svc CropService) UpdateCrop(
	c context.Context,
	cropID uuid.UUID,
	param request.UpdateCrop,
) (response.Crop, error) {
	c, span := otel.Tracer.Start(c, "CropService UpdateCrop")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CropService UpdateCrop").
		Str(log.KeyCropID, cropID.String()).
		Str(log.KeyProcess, "updating crop").
		Logger()

	logger.Info().Msgf("updating cropId=%s", cropID.String())
	data := cropData{}
	c = logger.WithContext(c)
	if err := svc.client.Put(c, "/crops/"+cropID.String(), param, &data); err != nil {
		err = fmt.Errorf("failed updating cropId=%s with error=%w", cropID.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Crop{}, err
	}
	logger.Info().Msgf("updated cropId=%s", cropID.String())
	return data.Crop, nil
}

func (svc CropService) RemoveCrop(c context.Context, cropID uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CropService RemoveCrop")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CropService RemoveCrop").
		Str(log.KeyCropID, cropID.String()).
		Str(log.KeyProcess, "removing crop").
		Logger()

	logger.Info().Msgf("removing cropId=%s", cropID.String())
	c = logger.WithContext(c)
	if err := svc.client.Delete(c, "/crops/"+cropID.String(), nil); err != nil {
		err = fmt.Errorf("failed removing cropId=%s with error=%w", cropID.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msgf("removed cropId=%s", cropID.String())
	return nil
}
