package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/valeriomes/agenzia-backend/internal/service"
)

type ImportHandler struct {
	Importer *service.Importer
}

func NewImportHandler(imp *service.Importer) *ImportHandler {
	return &ImportHandler{Importer: imp}
}

// Import ingests a legacy snapshot payload and upserts it. Field-level
// oddities (legacy names, comma decimals, bad dates) are normalized by
// the importer; only structurally invalid JSON is rejected.
func (h *ImportHandler) Import(c *gin.Context) {
	var payload service.LegacyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	res, err := h.Importer.Import(c.Request.Context(), payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "import ok", "imported": res})
}
