package board

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskhub/collab-api/internal"
	"taskhub/collab-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestEnv(t *testing.T) (*gin.Engine, *internal.Deps) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbc, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())))
	require.NoError(t, err)
	require.NoError(t, dbc.AutoMigrate(model.Project{}, model.Board{}, model.Task{}))

	d := &internal.Deps{DB: dbc}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("requestID", "test")
		c.Set("userID", "owner-1")
		c.Next()
	})

	b := r.Group("/api/boards")
	b.GET("", func(c *gin.Context) { BoardList(c, d) })
	b.GET("/:id", func(c *gin.Context) { BoardFetch(c, d) })
	b.POST("", func(c *gin.Context) { BoardCreate(c, d) })
	b.PUT("/:id", func(c *gin.Context) { BoardUpdate(c, d) })
	b.DELETE("/:id", func(c *gin.Context) { BoardDelete(c, d) })

	return r, d
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}

	return w, resp
}

func seedProject(t *testing.T, d *internal.Deps) model.Project {
	t.Helper()

	project := model.Project{Name: "Roadmap", OwnerID: "owner-1"}
	require.NoError(t, d.DB.Create(&project).Error)

	return project
}

func TestBoardCreateDefaultColumns(t *testing.T) {
	r, d := newTestEnv(t)
	project := seedProject(t, d)

	w, resp := doJSON(t, r, http.MethodPost, "/api/boards", gin.H{
		"name":       "Sprint 1",
		"project_id": project.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	board := resp["board"].(map[string]any)
	assert.Equal(t, []any{"ToDo", "InProgress", "Done"}, board["columns"])
}

func TestBoardCreateCustomColumns(t *testing.T) {
	r, d := newTestEnv(t)
	project := seedProject(t, d)

	w, resp := doJSON(t, r, http.MethodPost, "/api/boards", gin.H{
		"name":       "Kanban",
		"project_id": project.ID,
		"columns":    []string{"Backlog", "Doing", "Review", "Done"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	board := resp["board"].(map[string]any)
	assert.Equal(t, []any{"Backlog", "Doing", "Review", "Done"}, board["columns"])
}

func TestBoardCreateMissingProject(t *testing.T) {
	r, _ := newTestEnv(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/boards", gin.H{
		"name":       "Orphan",
		"project_id": 42,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Project not found", resp["error"])
}

func TestBoardListRequiresProject(t *testing.T) {
	r, d := newTestEnv(t)
	project := seedProject(t, d)

	w, _ := doJSON(t, r, http.MethodGet, "/api/boards", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/boards?project_id=42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	for i := 0; i < 2; i++ {
		require.NoError(t, d.DB.Create(&model.Board{
			Name:      fmt.Sprintf("b%d", i),
			ProjectID: project.ID,
			Columns:   model.DefaultColumns(),
		}).Error)
	}

	w, resp := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/boards?project_id=%d", project.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["boards"].([]any), 2)
}

func TestBoardUpdateAndDelete(t *testing.T) {
	r, d := newTestEnv(t)
	project := seedProject(t, d)

	board := model.Board{Name: "Sprint 1", ProjectID: project.ID, Columns: model.DefaultColumns()}
	require.NoError(t, d.DB.Create(&board).Error)

	w, resp := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/boards/%d", board.ID), gin.H{
		"name":    "Sprint 2",
		"columns": []string{"Open", "Closed"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := resp["board"].(map[string]any)
	assert.Equal(t, "Sprint 2", updated["name"])
	assert.Equal(t, []any{"Open", "Closed"}, updated["columns"])

	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/boards/%d", board.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/boards/%d", board.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
