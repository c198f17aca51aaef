package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Health reports liveness together with the state of the optional Redis
// backend.  Redis being down degrades the service but never fails the
// check, so the endpoint always answers 200.
func Health(rdb *redis.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		state := "disabled"
		if rdb != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
			defer cancel()
			state = "up"
			if err := rdb.Ping(ctx).Err(); err != nil {
				state = "down"
			}
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "redis": state})
	}
}
