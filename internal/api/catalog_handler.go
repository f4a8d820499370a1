package api

import (
	"errors"
	"net/http"

	"RetroCatalog/internal/interfaces"
	"RetroCatalog/internal/model"
	"RetroCatalog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CatalogHandler 外部目录搜索接口
type CatalogHandler struct {
	catalogService *service.CatalogService
	logger         *logrus.Logger
}

// NewCatalogHandler 创建CatalogHandler（适配器由main注入，共享令牌缓存）
func NewCatalogHandler(adapter interfaces.CatalogAdapter, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: service.NewCatalogService(adapter, logger),
		logger:         logger,
	}
}

// ApiSearch 目录搜索接口
// GET /games/apisearch?title=Sonic&platform=29
func (h *CatalogHandler) ApiSearch(c *gin.Context) {
	title := c.Query("title")
	platform := c.Query("platform")

	candidates, err := h.catalogService.Search(c.Request.Context(), title, platform)
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"message": ve.Message})
			return
		}
		h.logger.WithError(err).Error("ApiSearch failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "目录搜索时发生错误",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, candidates)
}
