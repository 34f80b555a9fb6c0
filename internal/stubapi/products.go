package stubapi

import (
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	catalogResponse "github.com/NadeeshaMedagama/modgoviya/catalog/pkg/response"
	inErrors "github.com/NadeeshaMedagama/modgoviya/internal/errors"
	"github.com/NadeeshaMedagama/modgoviya/internal/log"
	"github.com/NadeeshaMedagama/modgoviya/internal/otel"
)

func (s *Server) FindProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "StubApi FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "StubApi FindProducts").Logger()

	search := strings.ToLower(r.URL.Query().Get("search"))
	category := r.URL.Query().Get("category")
	sortBy := r.URL.Query().Get("sort_by")

	s.store.mu.Lock()
	products := make([]catalogResponse.Product, 0, len(s.store.products))
	for _, product := range s.store.products {
		if search != "" && !strings.Contains(strings.ToLower(product.Title), search) {
			continue
		}
		if category != "" && product.Category != category {
			continue
		}
		products = append(products, product)
	}
	s.store.mu.Unlock()

	switch sortBy {
	case "price_asc":
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case "price_desc":
		sort.SliceStable(products, func(i, j int) bool {
			return products[j].Price.LessThan(products[i].Price)
		})
	case "rating":
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case "latest", "":
	}

	logger.Info().Msgf("found %d products", len(products))
	writeSuccess(c, w, http.StatusOK, "successfully found products", map[string]interface{}{
		"products": products,
	})
}

func (s *Server) FindProductById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "StubApi FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "StubApi FindProductById").Logger()

	productID, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		writeFailed(c, w, http.StatusBadRequest, err.Error())
		return
	}
	logger = logger.With().Str(log.KeyProductID, productID.String()).Logger()

	s.store.mu.Lock()
	product, found := s.store.productByID(productID)
	s.store.mu.Unlock()
	if !found {
		logger.Error().
			Err(inErrors.ErrProductNotFound).
			Msg(inErrors.ErrProductNotFound.Error())
		writeFailed(c, w, http.StatusNotFound, inErrors.ErrProductNotFound.Error())
		return
	}

	logger.Info().Msgf("found productId=%s", productID.String())
	writeSuccess(c, w, http.StatusOK, "successfully found product", map[string]interface{}{
		"product": product,
	})
}
