package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/IWhitebird/go-leader-board/internal/apperr"
	"github.com/IWhitebird/go-leader-board/internal/leaderboard"
)

// UpdateScoreHandler returns a handler for POST /customer/:id/score/:delta.
// @Summary      Apply a signed delta to a customer's score
// @Description  Creates the customer on first touch and returns the resulting score
// @Tags         leaderboard
// @Produce      json
// @Param        id     path  int     true  "Customer ID"
// @Param        delta  path  string  true  "Signed decimal delta, e.g. -12.5"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /customer/{id}/score/{delta} [post]
func UpdateScoreHandler(svc *leaderboard.Service, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			writeError(c, apperr.InvalidArgument("invalid customer id"), development)
			return
		}

		delta, err := decimal.NewFromString(c.Param("delta"))
		if err != nil {
			writeError(c, apperr.InvalidArgument("invalid delta"), development)
			return
		}

		newScore, err := svc.UpdateScore(id, delta)
		if err != nil {
			writeError(c, err, development)
			return
		}

		c.JSON(http.StatusOK, gin.H{"score": newScore.String()})
	}
}

// GetLeaderboardHandler returns a handler for GET /leaderboard.
// @Summary      Get a dense rank window
// @Description  Returns the dense rank window [start..end]
// @Tags         leaderboard
// @Produce      json
// @Param        start  query  int  true  "1-based start rank"
// @Param        end    query  int  true  "1-based end rank, inclusive"
// @Success      200  {array}   models.Entry
// @Failure      400  {object}  map[string]string
// @Router       /leaderboard [get]
func GetLeaderboardHandler(svc *leaderboard.Service, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, err := parseInt32Query(c, "start")
		if err != nil {
			writeError(c, apperr.InvalidArgument("invalid start: %v", err), development)
			return
		}
		end, err := parseInt32Query(c, "end")
		if err != nil {
			writeError(c, apperr.InvalidArgument("invalid end: %v", err), development)
			return
		}

		entries, err := svc.GetLeaderboard(start, end)
		if err != nil {
			writeError(c, err, development)
			return
		}

		c.JSON(http.StatusOK, entries)
	}
}

// GetCustomerWithNeighborsHandler returns a handler for GET /leaderboard/:id.
// @Summary      Get a customer and their rank neighborhood
// @Description  Returns the customer's rank neighborhood
// @Tags         leaderboard
// @Produce      json
// @Param        id    path   int  true   "Customer ID"
// @Param        high  query  int  false  "Positions above (toward rank 1)"
// @Param        low   query  int  false  "Positions below"
// @Success      200  {array}   models.Entry
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /leaderboard/{id} [get]
func GetCustomerWithNeighborsHandler(svc *leaderboard.Service, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			writeError(c, apperr.InvalidArgument("invalid customer id"), development)
			return
		}

		high, err := parseInt32QueryDefault(c, "high", 0)
		if err != nil {
			writeError(c, apperr.InvalidArgument("invalid high: %v", err), development)
			return
		}
		low, err := parseInt32QueryDefault(c, "low", 0)
		if err != nil {
			writeError(c, apperr.InvalidArgument("invalid low: %v", err), development)
			return
		}

		entries, err := svc.GetCustomerWithNeighbors(id, high, low)
		if err != nil {
			writeError(c, err, development)
			return
		}

		c.JSON(http.StatusOK, entries)
	}
}

// ClearHandler returns a handler for DELETE /leaderboard/clear. Only
// registered in the development profile.
// @Summary      Clear the leaderboard
// @Description  Empties the board and the participant map. Development profile only.
// @Tags         leaderboard
// @Success      200
// @Router       /leaderboard/clear [delete]
func ClearHandler(svc *leaderboard.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.Clear()
		c.Status(http.StatusOK)
	}
}

func parseInt32Query(c *gin.Context, key string) (int32, error) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return 0, apperr.InvalidArgument("missing required query parameter %q", key)
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

func parseInt32QueryDefault(c *gin.Context, key string, def int32) (int32, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}
