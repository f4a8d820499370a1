package api

import (
	"errors"
	"fmt"
	"net/http"

	"RetroCatalog/internal/interfaces"
	"RetroCatalog/internal/model"
	"RetroCatalog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LibraryHandler 馆藏游戏的增删改查接口
type LibraryHandler struct {
	libraryService *service.LibraryService
	logger         *logrus.Logger
}

// NewLibraryHandler 创建LibraryHandler
func NewLibraryHandler(db *gorm.DB, assets interfaces.AssetHost, logger *logrus.Logger) *LibraryHandler {
	return &LibraryHandler{
		libraryService: service.NewLibraryService(db, assets, logger),
		logger:         logger,
	}
}

type addGamesRequest struct {
	GamesToAdd []model.GameImportItem `json:"gamesToAdd"`
}

type updateGamesRequest struct {
	GamesToUpdate []model.GameUpdateItem `json:"gamesToUpdate"`
}

type deleteGamesRequest struct {
	GameIDs []string `json:"gameIds"`
}

// AddGames 导入批次接口
// POST /games/addgames
func (h *LibraryHandler) AddGames(c *gin.Context) {
	var req addGamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "游戏列表无效"})
		return
	}

	added, failures, err := h.libraryService.ImportGames(c.Request.Context(), req.GamesToAdd)
	if err != nil {
		h.respondError(c, err, "添加游戏时发生错误")
		return
	}

	// 部分失败仍返回201，调用方需检查errors列表
	c.JSON(http.StatusCreated, gin.H{
		"message":    fmt.Sprintf("成功添加%d个游戏", len(added)),
		"addedGames": added,
		"errors":     emptyIfNil(failures),
	})
}

// RecentGames 最近入库的4条
// GET /games/recentgames
func (h *LibraryHandler) RecentGames(c *gin.Context) {
	games, err := h.libraryService.Recent(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "获取最近游戏时发生错误")
		return
	}
	c.JSON(http.StatusOK, games)
}

// ListGames 全量列表（标题字母序）
// GET /games/dbgames
func (h *LibraryHandler) ListGames(c *gin.Context) {
	games, err := h.libraryService.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "获取游戏列表时发生错误")
		return
	}
	c.JSON(http.StatusOK, games)
}

// SearchGames 标题子串搜索
// GET /games/searchdbgames?search=sonic
func (h *LibraryHandler) SearchGames(c *gin.Context) {
	games, err := h.libraryService.SearchByTitle(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.respondError(c, err, "搜索游戏时发生错误")
		return
	}
	c.JSON(http.StatusOK, games)
}

// SearchGamesByPlatform 按平台名称筛选
// GET /games/searchdbgamesbyplatform?platform=Mega%20Drive
func (h *LibraryHandler) SearchGamesByPlatform(c *gin.Context) {
	games, err := h.libraryService.SearchByPlatform(c.Request.Context(), c.Query("platform"))
	if err != nil {
		h.respondError(c, err, "按平台搜索游戏时发生错误")
		return
	}
	c.JSON(http.StatusOK, games)
}

// UpdateGames 更新批次接口（ID不存在立即404中止）
// PUT /games/updategames
func (h *LibraryHandler) UpdateGames(c *gin.Context) {
	var req updateGamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "游戏列表无效"})
		return
	}

	updated, err := h.libraryService.UpdateGames(c.Request.Context(), req.GamesToUpdate)
	if err != nil {
		h.respondError(c, err, "更新游戏时发生错误")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      fmt.Sprintf("成功更新%d个游戏", len(updated)),
		"updatedGames": updated,
	})
}

// DeleteGames 删除批次接口（同时释放托管封面资产）
// DELETE /games/deletegames
func (h *LibraryHandler) DeleteGames(c *gin.Context) {
	var req deleteGamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "游戏ID列表无效"})
		return
	}

	deleted, failures, err := h.libraryService.DeleteGames(c.Request.Context(), req.GameIDs)
	if err != nil {
		h.respondError(c, err, "删除游戏时发生错误")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      fmt.Sprintf("成功删除%d个游戏", len(deleted)),
		"deletedGames": deleted,
		"errors":       emptyIfNil(failures),
	})
}

// respondError 按错误类型映射HTTP状态码：校验400、未找到404、其余500
func (h *LibraryHandler) respondError(c *gin.Context, err error, fallback string) {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"message": ve.Message})
		return
	}
	var nf *model.NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, gin.H{"message": nf.Error()})
		return
	}
	h.logger.WithError(err).Error(fallback)
	c.JSON(http.StatusInternalServerError, gin.H{
		"message": fallback,
		"error":   err.Error(),
	})
}

// emptyIfNil 失败列表为空时序列化为[]而非null
func emptyIfNil(failures []model.ItemFailure) []model.ItemFailure {
	if failures == nil {
		return []model.ItemFailure{}
	}
	return failures
}
