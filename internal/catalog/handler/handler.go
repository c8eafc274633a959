package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/pkg/errx"
	"github.com/fekuna/omnipos-storefront-service/pkg/httpx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"go.uber.org/zap"
)

const maxDocumentBytes = 1 << 20

type Importer interface {
	Import(ctx context.Context, doc *catalog.Document) (*catalog.Result, error)
}

type CatalogHandler struct {
	importer Importer
	logger   logger.ZapLogger
}

func NewCatalogHandler(importer Importer, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{
		importer: importer,
		logger:   log,
	}
}

// ImportCatalog accepts a YAML catalog document as the raw request body.
func (h *CatalogHandler) ImportCatalog(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		httpx.WriteError(w, r, errx.BadRequest(err, "catalog document is too large or unreadable"))
		return
	}

	doc, err := catalog.Parse(body)
	if err == nil {
		var res *catalog.Result
		res, err = h.importer.Import(r.Context(), doc)
		if err == nil {
			httpx.OK(w, res)
			return
		}
	}

	if errors.Is(err, catalog.ErrInvalidDocument) {
		httpx.WriteError(w, r, errx.BadRequest(err, err.Error()))
		return
	}
	h.logger.Error("failed to import catalog", zap.Error(err))
	httpx.WriteError(w, r, err)
}
