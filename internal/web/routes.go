package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/face-attendance/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	attendanceHandler := handlers.NewAttendanceHandler()
	configHandler := handlers.NewConfigHandler(s.config)

	// Capture clients post to the root path
	s.router.Post(handlers.AttendancePath, attendanceHandler.Handle)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handlers.HealthCheck)
		r.Get("/config", configHandler.Get)
		r.Post(handlers.AttendancePath, attendanceHandler.Handle)
	})
}
