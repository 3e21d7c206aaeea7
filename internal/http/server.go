package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/Kushkushal/Clustorix-Admin/internal/auth"
	"github.com/Kushkushal/Clustorix-Admin/internal/config"
	"github.com/Kushkushal/Clustorix-Admin/internal/metrics"
	"github.com/Kushkushal/Clustorix-Admin/internal/repository"
)

type Server struct {
	cfg          config.Config
	store        *repository.Store
	resolver     *auth.Resolver
	redis        *redis.Client
	loginLimiter *ipRateLimiter
}

func NewServer(cfg config.Config, store *repository.Store, redisClient *redis.Client) *Server {
	return &Server{
		cfg:          cfg,
		store:        store,
		resolver:     auth.NewResolver(cfg.DefaultAdminEmail, store),
		redis:        redisClient,
		loginLimiter: newIPRateLimiter(cfg.LoginRatePerMinute, cfg.LoginRateBurst),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(corsMiddleware(s.cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(s.loginLimiter.middleware).Post("/login", s.handleLogin)
			r.Get("/logout", s.handleLogout)
			r.Get("/init", s.handleInitAdmin)
			r.With(s.authMiddleware).Get("/me", s.handleGetMe)
			r.With(s.authMiddleware, requireRoles(auth.RoleSuperAdmin)).Post("/register", s.handleRegister)
		})

		r.Route("/schools", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.With(anyAdmin).Get("/dashboard/summary", s.handleDashboardSummary)
			r.With(anyAdmin).Get("/", s.handleListSchools)
			r.With(superAdminOnly).Post("/", s.handleCreateSchool)
			r.With(anyAdmin).Get("/{id}", s.handleGetSchool)
			r.With(superAdminOnly).Put("/{id}", s.handleUpdateSchool)
			r.With(superAdminOnly).Put("/{id}/features", s.handleUpdateSchoolFeatures)
			r.With(superAdminOnly).Delete("/{id}", s.handleDeleteSchool)
		})

		r.Route("/students", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.With(anyAdmin).Get("/stats/summary", s.handleStudentStats)
			r.With(anyAdmin).Get("/school/{schoolId}", s.handleListStudentsBySchool)
			r.With(anyAdmin).Get("/", s.handleListStudents)
			r.With(anyAdmin).Post("/", s.handleCreateStudent)
			r.With(anyAdmin).Get("/{id}", s.handleGetStudent)
			r.With(anyAdmin).Put("/{id}", s.handleUpdateStudent)
			r.With(superAdminOnly).Delete("/{id}", s.handleDeleteStudent)
		})

		r.Route("/teachers", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.With(anyAdmin).Get("/stats/summary", s.handleTeacherStats)
			r.With(anyAdmin).Get("/school/{schoolId}", s.handleListTeachersBySchool)
			r.With(anyAdmin).Get("/", s.handleListTeachers)
			r.With(anyAdmin).Post("/", s.handleCreateTeacher)
			r.With(anyAdmin).Get("/{id}", s.handleGetTeacher)
			r.With(anyAdmin).Put("/{id}", s.handleUpdateTeacher)
			r.With(superAdminOnly).Delete("/{id}", s.handleDeleteTeacher)
		})

		r.Route("/classes", func(r chi.Router) {
			r.Use(s.authMiddleware, anyAdmin)
			r.Get("/school/{schoolId}", s.handleListClassesBySchool)
			r.Get("/", s.handleListClasses)
			r.Post("/", s.handleCreateClass)
			r.Get("/{id}", s.handleGetClass)
			r.Put("/{id}", s.handleUpdateClass)
			r.With(superAdminOnly).Delete("/{id}", s.handleDeleteClass)
		})

		r.Route("/subjects", func(r chi.Router) {
			r.Use(s.authMiddleware, anyAdmin)
			r.Get("/school/{schoolId}", s.handleListSubjectsBySchool)
			r.Get("/", s.handleListSubjects)
			r.Post("/", s.handleCreateSubject)
			r.Get("/{id}", s.handleGetSubject)
			r.Put("/{id}", s.handleUpdateSubject)
			r.With(superAdminOnly).Delete("/{id}", s.handleDeleteSubject)
		})

		r.Route("/attendances", func(r chi.Router) {
			r.Use(s.authMiddleware, anyAdmin)
			r.Get("/school/{schoolId}", s.handleListAttendancesBySchool)
			r.Get("/", s.handleListAttendances)
			r.Post("/", s.handleCreateAttendance)
			r.Get("/{id}", s.handleGetAttendance)
			r.Put("/{id}", s.handleUpdateAttendance)
			r.With(superAdminOnly).Delete("/{id}", s.handleDeleteAttendance)
		})

		r.Route("/fees", func(r chi.Router) {
			r.Use(s.authMiddleware, anyAdmin)
			r.Get("/stats/summary", s.handleFeesStats)
			r.Get("/school/{schoolId}", s.handleListFeesBySchool)
			r.Get("/", s.handleListFees)
			r.Post("/", s.handleCreateFees)
			r.Get("/{id}", s.handleGetFees)
			r.Put("/{id}", s.handleUpdateFees)
			r.With(superAdminOnly).Delete("/{id}", s.handleDeleteFees)
		})

		r.Route("/tickets", func(r chi.Router) {
			r.Use(s.authMiddleware, anyAdmin)
			r.Get("/stats/summary", s.handleTicketStats)
			r.Get("/school/{schoolId}", s.handleListTicketsBySchool)
			r.Get("/", s.handleListTickets)
			r.Post("/", s.handleCreateTicket)
			r.Get("/{id}", s.handleGetTicket)
			r.Put("/{id}/status", s.handleUpdateTicketStatus)
			r.With(superAdminOnly).Delete("/{id}", s.handleDeleteTicket)
		})
	})

	return r
}

// Route-level role sets. Reads and day-to-day writes are open to both admin
// roles; school lifecycle and every entity delete are SuperAdmin only.
var (
	anyAdmin       = requireRoles(auth.RoleSuperAdmin, auth.RoleAdmin)
	superAdminOnly = requireRoles(auth.RoleSuperAdmin)
)
