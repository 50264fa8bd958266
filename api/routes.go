package api

import (
	"time"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"

	"github.com/IWhitebird/go-leader-board/config"
	"github.com/IWhitebird/go-leader-board/internal/leaderboard"
)

// ConfigureRoutes wires the HTTP shell 1:1 onto the core operation table.
// The two read-heavy GET endpoints are fronted by an in-memory
// response cache, since a dense rank window is a natural cache candidate
// and churns only as fast as updateScore is called.
func ConfigureRoutes(r *gin.Engine, svc *leaderboard.Service, cfg *config.AppConfig) {
	store := persistence.NewInMemoryStore(time.Second)
	const ttl = 2 * time.Second

	r.GET("/health", HealthHandler())

	r.GET("/leaderboard", cache.CachePage(store, ttl, GetLeaderboardHandler(svc, cfg.IsDevelopment())))
	r.GET("/leaderboard/:id", cache.CachePage(store, ttl, GetCustomerWithNeighborsHandler(svc, cfg.IsDevelopment())))
	r.POST("/customer/:id/score/:delta", UpdateScoreHandler(svc, cfg.IsDevelopment()))

	if cfg.IsDevelopment() {
		r.DELETE("/leaderboard/clear", ClearHandler(svc))
	}
}
