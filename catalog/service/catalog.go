package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NadeeshaMedagama/modgoviya/catalog/pkg/request"
	"github.com/NadeeshaMedagama/modgoviya/catalog/pkg/response"
	"github.com/NadeeshaMedagama/modgoviya/internal/api"
	"github.com/NadeeshaMedagama/modgoviya/internal/log"
	"github.com/NadeeshaMedagama/modgoviya/internal/otel"
)

type CatalogService struct {
	client *api.Client
}

func NewCatalogService(client *api.Client) CatalogService {
	return CatalogService{client: client}
}

func (svc CatalogService) FindProducts(
	c context.Context,
	param request.FindProducts,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService FindProducts").
		Str(log.KeyProcess, "finding products").
		Logger()

	query := url.Values{}
	if param.Search != "" {
		query.Set("search", param.Search)
	}
	if param.Category != "" {
		query.Set("category", param.Category)
	}
	if param.SortBy != "" {
		query.Set("sort_by", param.SortBy)
	}
	path := "/products"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	logger.Info().Msg("finding products")
	data := struct {
		Products []response.Product `json:"products"`
	}{}
	c = logger.WithContext(c)
	if err := svc.client.Get(c, path, &data); err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products", len(data.Products))
	return data.Products, nil
}

func (svc CatalogService) FindProductById(
	c context.Context,
	productID uuid.UUID,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService FindProductById").
		Str(log.KeyProductID, productID.String()).
		Logger()

	logger.Info().Msgf("finding productId=%s", productID.String())
	data := struct {
		Product response.Product `json:"product"`
	}{}
	c = logger.WithContext(c)
	if err := svc.client.Get(c, "/products/"+productID.String(), &data); err != nil {
		err = fmt.Errorf("failed finding productId=%s with error=%w", productID.String(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msgf("found productId=%s", productID.String())
	return data.Product, nil
}
