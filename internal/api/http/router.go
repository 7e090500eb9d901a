package http

import (
	"net/http"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/security"
	"coursefund-backend/internal/storage"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Auth         *AuthHandler
	Request      *RequestHandler
	Course       *CourseHandler
	Admin        *AdminHandler
	Document     *DocumentHandler
	Notification *NotificationHandler
}

// NewRouter wires all role-gated routes. mockStorage is nil when the
// firebase backend is in use; the local upload/download endpoints are
// only registered for the mock backend.
func NewRouter(h Handlers, tokens security.TokenManager, mockStorage *storage.MockStorageBackend) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/api/v1/auth/signup", h.Auth.Signup).Methods("POST")
	r.HandleFunc("/api/v1/auth/login", h.Auth.Login).Methods("POST")
	r.HandleFunc("/api/v1/auth/refresh", h.Auth.Refresh).Methods("POST")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	if mockStorage != nil {
		storageHandler := NewMockStorageHandler(mockStorage)
		r.HandleFunc("/api/v1/upload/{token}", storageHandler.HandleUpload).Methods("PUT")
		r.HandleFunc("/api/v1/download/{key}", storageHandler.HandleDownload).Methods("GET")
	}

	// Authenticated routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	api.HandleFunc("/me", h.Auth.Me).Methods("GET")
	api.HandleFunc("/me", h.Auth.UpdateProfile).Methods("PUT")

	// Funding requests
	api.HandleFunc("/requests", RequireRole(domain.UserRoleStudent, h.Request.Submit)).Methods("POST")
	api.HandleFunc("/requests/mine", RequireRole(domain.UserRoleStudent, h.Request.ListMine)).Methods("GET")
	api.HandleFunc("/requests/open", RequireRole(domain.UserRoleDonor, h.Request.ListOpen)).Methods("GET")
	api.HandleFunc("/requests", RequireRole(domain.UserRoleAdmin, h.Request.ListAll)).Methods("GET")
	api.HandleFunc("/requests/{id:[0-9]+}", h.Request.Get).Methods("GET")
	api.HandleFunc("/requests/{id:[0-9]+}/review", RequireRole(domain.UserRoleAdmin, h.Request.Review)).Methods("POST")
	api.HandleFunc("/requests/{id:[0-9]+}/sponsor", RequireRole(domain.UserRoleDonor, h.Request.Sponsor)).Methods("POST")
	api.HandleFunc("/requests/{id:[0-9]+}/progress", h.Request.Progress).Methods("GET")

	// Ledger
	api.HandleFunc("/donations", RequireRole(domain.UserRoleDonor, h.Request.Donate)).Methods("POST")
	api.HandleFunc("/donations/mine", RequireRole(domain.UserRoleDonor, h.Request.ListMyTransactions)).Methods("GET")

	// Admin projections
	api.HandleFunc("/admin/stats", RequireRole(domain.UserRoleAdmin, h.Admin.Stats)).Methods("GET")
	api.HandleFunc("/admin/ledger/export", RequireRole(domain.UserRoleAdmin, h.Admin.ExportLedger)).Methods("GET")
	api.HandleFunc("/admin/transactions/{id:[0-9]+}", RequireRole(domain.UserRoleAdmin, h.Admin.UpdateTransaction)).Methods("PATCH")

	// Course catalog
	api.HandleFunc("/courses", h.Course.List).Methods("GET")
	api.HandleFunc("/courses/{id:[0-9]+}", h.Course.Get).Methods("GET")
	api.HandleFunc("/courses", RequireRole(domain.UserRoleAdmin, h.Course.Create)).Methods("POST")
	api.HandleFunc("/courses/{id:[0-9]+}", RequireRole(domain.UserRoleAdmin, h.Course.Update)).Methods("PUT")

	// Supporting documents
	api.HandleFunc("/documents/upload-url", RequireRole(domain.UserRoleStudent, h.Document.GetUploadURL)).Methods("POST")
	api.HandleFunc("/documents/{id:[0-9]+}/confirm", RequireRole(domain.UserRoleStudent, h.Document.ConfirmUpload)).Methods("POST")
	api.HandleFunc("/documents/{id:[0-9]+}/download-url", h.Document.GetDownloadURL).Methods("GET")
	api.HandleFunc("/documents/mine", h.Document.ListMine).Methods("GET")

	// Notifications
	api.HandleFunc("/notifications", h.Notification.List).Methods("GET")
	api.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notification.MarkAsRead).Methods("POST")

	return r
}
