package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/config"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/handlers"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/middleware"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/pkg/billing"
)

// RegisterRoutes wires every endpoint onto one router: a public surface
// for the website and client invoice links, and a JWT-protected /api/v1
// surface for staff.
func RegisterRoutes() *mux.Router {
	r := mux.NewRouter()

	notifier := handlers.NewNotifierFromEnv()
	store := handlers.NewObjectStoreFromEnv()

	quotationSvc := billing.NewQuotationService(config.DB, notifier, store)
	invoiceSvc := billing.NewInvoiceService(config.DB, notifier)

	quotations := handlers.NewQuotationHandler(quotationSvc)
	projects := handlers.NewProjectHandler()
	invoices := handlers.NewInvoiceHandler(invoiceSvc)
	reviews := handlers.NewReviewHandler()
	blog := handlers.NewBlogHandler()
	gallery := handlers.NewGalleryHandler(store)
	reports := handlers.NewReportHandler()
	audit := handlers.NewAuditHandler()

	// =====================================================
	// Public routes (no auth)
	// =====================================================
	r.HandleFunc("/api/v1/auth/login", handlers.Login).Methods("POST")
	r.HandleFunc("/public/invoices/{number}", invoices.PublicInvoice).Methods("GET")
	r.HandleFunc("/public/reviews", reviews.CreateReview).Methods("POST")
	r.HandleFunc("/public/reviews", reviews.ListPublishedReviews).Methods("GET")
	r.HandleFunc("/public/blog", blog.ListPublishedPosts).Methods("GET")
	r.HandleFunc("/public/blog/{slug}", blog.GetBlogPostBySlug).Methods("GET")
	r.HandleFunc("/public/gallery", gallery.ListImages).Methods("GET")

	// =====================================================
	// Staff routes (any authenticated user)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/auth/me", handlers.GetCurrentUser).Methods("GET")

	api.HandleFunc("/quotations", quotations.CreateQuotation).Methods("POST")
	api.HandleFunc("/quotations", quotations.ListQuotations).Methods("GET")
	api.HandleFunc("/quotations/{number}", quotations.GetQuotation).Methods("GET")
	api.HandleFunc("/quotations/{number}", quotations.UpdateQuotation).Methods("PATCH")
	api.HandleFunc("/quotations/{number}/status", quotations.ChangeQuotationStatus).Methods("POST")
	api.HandleFunc("/quotations/{number}/export", reports.ExportQuotation).Methods("GET")

	api.HandleFunc("/projects", projects.ListProjects).Methods("GET")
	api.HandleFunc("/projects/{number}", projects.GetProject).Methods("GET")
	api.HandleFunc("/projects/{number}", projects.UpdateProject).Methods("PATCH")
	api.HandleFunc("/projects/{number}/extra-work", projects.AddExtraWork).Methods("POST")
	api.HandleFunc("/projects/{number}/site-images", projects.AddSiteImage).Methods("POST")

	api.HandleFunc("/invoices", invoices.ListInvoices).Methods("GET")
	api.HandleFunc("/invoices/{number}", invoices.GetInvoice).Methods("GET")
	api.HandleFunc("/invoices/{number}/payments", invoices.RecordPayment).Methods("POST")
	api.HandleFunc("/invoices/{number}/export", reports.ExportInvoice).Methods("GET")

	api.HandleFunc("/blog", blog.ListBlogPosts).Methods("GET")
	api.HandleFunc("/blog", blog.CreateBlogPost).Methods("POST")
	api.HandleFunc("/blog/{id}", blog.UpdateBlogPost).Methods("PATCH")
	api.HandleFunc("/blog/{id}", blog.DeleteBlogPost).Methods("DELETE")

	api.HandleFunc("/gallery", gallery.UploadImage).Methods("POST")
	api.HandleFunc("/gallery/{id}", gallery.DeleteImage).Methods("DELETE")

	api.HandleFunc("/reviews", reviews.ListAllReviews).Methods("GET")
	api.HandleFunc("/reviews/{id}/publish", reviews.PublishReview).Methods("POST")
	api.HandleFunc("/reviews/{id}", reviews.DeleteReview).Methods("DELETE")

	// =====================================================
	// Admin-only routes
	// =====================================================
	adminOnly := []string{models.RoleAdmin}
	api.Handle("/auth/register", middleware.RequireRole(adminOnly, http.HandlerFunc(handlers.Register))).Methods("POST")
	api.Handle("/quotations/{number}", middleware.RequireRole(adminOnly, http.HandlerFunc(quotations.DeleteQuotation))).Methods("DELETE")
	api.Handle("/invoices/{number}/rotate-token", middleware.RequireRole(adminOnly, http.HandlerFunc(invoices.RotateAccessToken))).Methods("POST")
	api.Handle("/audit-logs", middleware.RequireRole(adminOnly, http.HandlerFunc(audit.ListAuditLogs))).Methods("GET")

	return r
}
