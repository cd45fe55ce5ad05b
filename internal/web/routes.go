package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/face-attendance/internal/web/handlers"
	"github.com/kozaktomas/face-attendance/internal/web/middleware"
)

func (s *Server) setupRoutes(deps Deps, sessionManager *middleware.SessionManager) {
	cameras := handlers.NewCameraGuard(deps.OpenCamera)

	authHandler := handlers.NewAuthHandler(deps.Users, sessionManager)
	usersHandler := handlers.NewUsersHandler(deps.Users, deps.Store)
	enrollHandler := handlers.NewEnrollHandler(deps.Users, deps.Capturer, cameras)
	attendanceHandler := handlers.NewAttendanceHandler(deps.Ledger)
	streamHandler := handlers.NewStreamHandler(cameras, deps.Loop)

	// Health check (no verification required)
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Identity verification
		r.Post("/verify", authHandler.Verify)
		r.Post("/logout", authHandler.Logout)
		r.Get("/auth/status", authHandler.Status)

		// Registration and enrollment
		r.Post("/users", usersHandler.Register)
		r.Get("/users", usersHandler.List)
		r.Post("/enroll/{name}", enrollHandler.Capture)

		// Attendance ledger
		r.Get("/attendance", attendanceHandler.List)

		// Raw camera preview
		r.Get("/video/raw", streamHandler.RawFeed)

		// Recognition feed only runs for verified users
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireVerified(sessionManager))
			r.Get("/video/recognize", streamHandler.RecognizeFeed)
		})
	})
}
