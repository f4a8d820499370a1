package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"RetroCatalog/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeCatalogAdapter struct {
	games []model.IgdbGame
	err   error
}

func (f *fakeCatalogAdapter) SearchGames(context.Context, string, string) ([]model.IgdbGame, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.games, nil
}

type fakeAssetHost struct {
	uploads int
	deleted []string
}

func (f *fakeAssetHost) UploadImage(_ context.Context, source string) (string, error) {
	if source == "" {
		return "", fmt.Errorf("空的图片来源")
	}
	f.uploads++
	return fmt.Sprintf("https://assets.example.com/RetroCatalog/img%d.jpg", f.uploads), nil
}

func (f *fakeAssetHost) DeleteImage(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

func setupRouter(t *testing.T, catalog *fakeCatalogAdapter) (*gin.Engine, *fakeAssetHost) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Game{}, &model.ImportLog{}))

	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)

	assets := &fakeAssetHost{}
	catalogHandler := NewCatalogHandler(catalog, l)
	libraryHandler := NewLibraryHandler(db, assets, l)

	r := gin.New()
	games := r.Group("/games")
	games.GET("/apisearch", catalogHandler.ApiSearch)
	games.POST("/addgames", libraryHandler.AddGames)
	games.GET("/recentgames", libraryHandler.RecentGames)
	games.GET("/dbgames", libraryHandler.ListGames)
	games.GET("/searchdbgames", libraryHandler.SearchGames)
	games.GET("/searchdbgamesbyplatform", libraryHandler.SearchGamesByPlatform)
	games.PUT("/updategames", libraryHandler.UpdateGames)
	games.DELETE("/deletegames", libraryHandler.DeleteGames)
	return r, assets
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func addTwoGames(t *testing.T, r *gin.Engine) []model.Game {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/games/addgames", gin.H{
		"gamesToAdd": []gin.H{
			{"title": "Sonic", "platform": "Mega Drive", "image": "https://img/sonic.jpg", "complete": "CIB", "country": "JP"},
			{"title": "Alex Kidd", "platform": "Master System", "image": "https://img/alexkidd.jpg"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		AddedGames []model.Game `json:"addedGames"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.AddedGames, 2)
	return resp.AddedGames
}

func TestApiSearch_MissingParams(t *testing.T) {
	r, _ := setupRouter(t, &fakeCatalogAdapter{})

	w := doJSON(r, http.MethodGet, "/games/apisearch?platform=29", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/games/apisearch?title=Sonic", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApiSearch_ReturnsCandidates(t *testing.T) {
	r, _ := setupRouter(t, &fakeCatalogAdapter{games: []model.IgdbGame{
		{ID: 42, Name: "Sonic (EU)", ParentGame: 7},
		{ID: 7, Name: "Sonic", Cover: &model.IgdbCover{URL: "//img/t_thumb/x.jpg"}},
	}})

	w := doJSON(r, http.MethodGet, "/games/apisearch?title=Sonic&platform=29", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var candidates []model.GameCandidate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &candidates))
	require.Len(t, candidates, 2)
	assert.Equal(t, "https://img/t_cover_big/x.jpg", candidates[0].Image)
	assert.Equal(t, "Mega Drive", candidates[0].Platform)
}

func TestApiSearch_UpstreamFailure(t *testing.T) {
	r, _ := setupRouter(t, &fakeCatalogAdapter{err: &model.UpstreamSearchError{Status: 502, Body: "bad gateway"}})

	w := doJSON(r, http.MethodGet, "/games/apisearch?title=Sonic&platform=29", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["message"])
	assert.Contains(t, resp["error"], "502")
}

func TestAddGames_EmptyList(t *testing.T) {
	r, _ := setupRouter(t, &fakeCatalogAdapter{})

	w := doJSON(r, http.MethodPost, "/games/addgames", gin.H{"gamesToAdd": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddGames_ThenListAlphabetical(t *testing.T) {
	r, _ := setupRouter(t, &fakeCatalogAdapter{})
	addTwoGames(t, r)

	w := doJSON(r, http.MethodGet, "/games/dbgames", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var games []model.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &games))
	require.Len(t, games, 2)
	assert.Equal(t, "Alex Kidd", games[0].Title)
	assert.Equal(t, "Sonic", games[1].Title)
	assert.Contains(t, games[0].Image, "assets.example.com")
}

func TestRecentGames(t *testing.T) {
	r, _ := setupRouter(t, &fakeCatalogAdapter{})
	addTwoGames(t, r)

	w := doJSON(r, http.MethodGet, "/games/recentgames", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var games []model.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &games))
	assert.Len(t, games, 2)
}

func TestSearchDbGames(t *testing.T) {
	r, _ := setupRouter(t, &fakeCatalogAdapter{})
	addTwoGames(t, r)

	w := doJSON(r, http.MethodGet, "/games/searchdbgames?search=sonic", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var games []model.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &games))
	require.Len(t, games, 1)
	assert.Equal(t, "Sonic", games[0].Title)
}

func TestSearchDbGamesByPlatform(t *testing.T) {
	r, _ := setupRouter(t, &fakeCatalogAdapter{})
	addTwoGames(t, r)

	w := doJSON(r, http.MethodGet, "/games/searchdbgamesbyplatform?platform=Master+System", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var games []model.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &games))
	require.Len(t, games, 1)
	assert.Equal(t, "Alex Kidd", games[0].Title)

	w = doJSON(r, http.MethodGet, "/games/searchdbgamesbyplatform", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateGames_UnknownID(t *testing.T) {
	r, _ := setupRouter(t, &fakeCatalogAdapter{})

	w := doJSON(r, http.MethodPut, "/games/updategames", gin.H{
		"gamesToUpdate": []gin.H{{"id": "A", "complete": "yes", "country": "US"}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateGames_Success(t *testing.T) {
	r, _ := setupRouter(t, &fakeCatalogAdapter{})
	added := addTwoGames(t, r)

	w := doJSON(r, http.MethodPut, "/games/updategames", gin.H{
		"gamesToUpdate": []gin.H{{"id": added[0].ID, "complete": "loose", "country": "EU"}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		UpdatedGames []model.Game `json:"updatedGames"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.UpdatedGames, 1)
	assert.Equal(t, "loose", resp.UpdatedGames[0].Complete)
	assert.Equal(t, "EU", resp.UpdatedGames[0].Country)
}

func TestUpdateGames_MissingID(t *testing.T) {
	r, _ := setupRouter(t, &fakeCatalogAdapter{})

	w := doJSON(r, http.MethodPut, "/games/updategames", gin.H{
		"gamesToUpdate": []gin.H{{"complete": "yes"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteGames_MixedResult(t *testing.T) {
	r, assets := setupRouter(t, &fakeCatalogAdapter{})
	added := addTwoGames(t, r)

	w := doJSON(r, http.MethodDelete, "/games/deletegames", gin.H{
		"gameIds": []string{added[0].ID, "不存在的ID"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		DeletedGames []string            `json:"deletedGames"`
		Errors       []model.ItemFailure `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{added[0].ID}, resp.DeletedGames)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, model.FailureNotFound, resp.Errors[0].Reason)
	assert.Len(t, assets.deleted, 1)
}

func TestDeleteGames_EmptyList(t *testing.T) {
	r, _ := setupRouter(t, &fakeCatalogAdapter{})

	w := doJSON(r, http.MethodDelete, "/games/deletegames", gin.H{"gameIds": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
