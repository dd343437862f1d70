package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports whether postgres and redis are reachable; every comanda
// flow touches both.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		postgres := "ok"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			postgres = "indisponivel"
		}

		cache := "ok"
		if err := rdb.Ping(ctx).Err(); err != nil {
			cache = "indisponivel"
		}

		status := http.StatusOK
		if postgres != "ok" || cache != "ok" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"service":  "travvizan-backend",
			"postgres": postgres,
			"redis":    cache,
		})
	}
}
