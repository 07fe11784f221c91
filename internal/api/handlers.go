package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type statusResponse struct {
	MonitorID    string    `json:"monitor_id"`
	Level        string    `json:"level"`
	MemoryUsedGB float64   `json:"memory_used_gb"`
	SwapUsedGB   float64   `json:"swap_used_gb"`
	MemoryLine   string    `json:"memory_line"`
	SwapLine     string    `json:"swap_line"`
	Timestamp    time.Time `json:"timestamp"`
}

func (s *Server) getStatus(c *fiber.Ctx) error {
	latest := s.sampler.Latest()
	if latest == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "no sample collected yet",
		})
	}

	return c.JSON(statusResponse{
		MonitorID:    s.id,
		Level:        latest.Level.String(),
		MemoryUsedGB: latest.Stats.MemoryUsedGB,
		SwapUsedGB:   latest.Stats.SwapUsedGB,
		MemoryLine:   latest.Stats.MemoryLine(),
		SwapLine:     latest.Stats.SwapLine(),
		Timestamp:    latest.Timestamp,
	})
}

func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":     "healthy",
		"monitor_id": s.id,
		"uptime":     time.Since(s.started).String(),
	})
}
