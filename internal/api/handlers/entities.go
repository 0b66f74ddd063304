package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/valeriomes/agenzia-backend/internal/model"
	"github.com/valeriomes/agenzia-backend/internal/repository"
)

// EntityHandler serves the flat entity lists the dashboard's filter
// pickers are built from.
type EntityHandler struct {
	Repo *repository.PostgresRepo
}

func NewEntityHandler(repo *repository.PostgresRepo) *EntityHandler {
	return &EntityHandler{Repo: repo}
}

func (h *EntityHandler) ListClients(c *gin.Context) {
	list, err := h.Repo.ListClients(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *EntityHandler) ListUsers(c *gin.Context) {
	list, err := h.Repo.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *EntityHandler) ListPresets(c *gin.Context) {
	list, err := h.Repo.ListPresets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListAbsences returns approved absences only; pending and rejected rows
// never reach the dashboard's calendar.
func (h *EntityHandler) ListAbsences(c *gin.Context) {
	list, err := h.Repo.ListAbsences(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	active := make([]model.Absence, 0, len(list))
	for i := range list {
		if list[i].IsActive() {
			active = append(active, list[i])
		}
	}
	c.JSON(http.StatusOK, active)
}
