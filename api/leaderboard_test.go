package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IWhitebird/go-leader-board/internal/leaderboard"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(svc *leaderboard.Service) *gin.Engine {
	r := gin.New()
	r.POST("/customer/:id/score/:delta", UpdateScoreHandler(svc, true))
	r.GET("/leaderboard", GetLeaderboardHandler(svc, true))
	r.GET("/leaderboard/:id", GetCustomerWithNeighborsHandler(svc, true))
	r.DELETE("/leaderboard/clear", ClearHandler(svc))
	return r
}

func TestUpdateScoreHandlerSuccess(t *testing.T) {
	svc := leaderboard.New()
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/customer/1/score/10.5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"score":"10.5"}`, w.Body.String())
}

func TestUpdateScoreHandlerInvalidID(t *testing.T) {
	svc := leaderboard.New()
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/customer/abc/score/10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateScoreHandlerInvalidDelta(t *testing.T) {
	svc := leaderboard.New()
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/customer/1/score/not-a-number", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetLeaderboardHandlerRequiresQueryParams(t *testing.T) {
	svc := leaderboard.New()
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/leaderboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetLeaderboardHandlerSuccess(t *testing.T) {
	svc := leaderboard.New()
	_, _ = svc.UpdateScore(1, decimalOf(t, "10"))
	_, _ = svc.UpdateScore(2, decimalOf(t, "20"))
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/leaderboard?start=1&end=2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"customerId":2`)
}

func TestGetCustomerWithNeighborsHandlerNotFound(t *testing.T) {
	svc := leaderboard.New()
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/leaderboard/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearHandler(t *testing.T) {
	svc := leaderboard.New()
	_, _ = svc.UpdateScore(1, decimalOf(t, "10"))
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/leaderboard/clear", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, svc.BoardSize())
}
