// Package server hands the heatmap product to a browser-side renderer over HTTP.
package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rnwolfe/streakmap/internal/activity"
	"github.com/rnwolfe/streakmap/internal/config"
	"github.com/rnwolfe/streakmap/internal/report"
)

// LoadFunc recomputes the product from the event source.
type LoadFunc func(o report.Overrides) (*activity.Result, error)

// New builds the router. Every request recomputes; nothing is cached.
func New(load LoadFunc, allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if len(allowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: allowOrigins,
			AllowMethods: []string{"GET", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Cache-Control"},
		}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/heatmap", func(c *gin.Context) {
		res, ok := run(c, load)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, res)
	})
	api.GET("/streak", func(c *gin.Context) {
		res, ok := run(c, load)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"longest_streak": res.LongestStreak,
			"current_streak": res.CurrentStreak,
			"today":          res.Today,
		})
	})

	return r
}

func run(c *gin.Context, load LoadFunc) (*activity.Result, bool) {
	o, err := overridesFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	res, err := load(o)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, activity.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return nil, false
	}
	return res, true
}

// overridesFromQuery reads ?rollover=, ?tz=, ?count= and ?fill=.
func overridesFromQuery(c *gin.Context) (report.Overrides, error) {
	var o report.Overrides

	if v := c.Query("rollover"); v != "" {
		h, err := config.ParseHour(v)
		if err != nil {
			return o, err
		}
		o.Rollover = &h
	}
	if v := c.Query("tz"); v != "" {
		if _, err := (config.DayConfig{Timezone: v}).Location(); err != nil {
			return o, err
		}
		o.Timezone = v
	}
	if v := c.Query("count"); v != "" {
		mode, err := activity.ParseCountMode(v)
		if err != nil {
			return o, err
		}
		o.Mode = &mode
	}
	if v := c.Query("fill"); v != "" {
		fill, err := strconv.ParseBool(v)
		if err != nil {
			return o, errors.New("fill must be true or false")
		}
		o.Fill = &fill
	}
	return o, nil
}
