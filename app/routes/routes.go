package routes

import (
	"github.com/gorilla/mux"

	"helpboard/app/controllers"
	"helpboard/app/middleware"
	"helpboard/app/render"
	"helpboard/app/services"
)

// SetupRoutes wires the dashboard pages and the JSON API. Everything except
// the auth endpoints requires a logged-in user.
func SetupRoutes(posts *services.PostService, auth *services.AuthService, renderer *render.Renderer) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	postController := controllers.NewPostController(posts, renderer)
	authController := controllers.NewAuthController(auth, renderer)

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.HandleFunc("/register", authController.APIRegister).Methods("POST")
	api.HandleFunc("/login", authController.APILogin).Methods("POST")
	api.HandleFunc("/logout", authController.APILogout).Methods("POST")
	api.HandleFunc("/me", authController.APIMe).Methods("GET")

	protectedAPI := api.NewRoute().Subrouter()
	protectedAPI.Use(middleware.RequireSession(auth))
	protectedAPI.HandleFunc("/posts", postController.APIIndex).Methods("GET")
	protectedAPI.HandleFunc("/posts", postController.APICreate).Methods("POST")
	protectedAPI.HandleFunc("/posts/{id:[0-9]+}", postController.APIShow).Methods("GET")
	protectedAPI.HandleFunc("/posts/{id:[0-9]+}", postController.APIUpdate).Methods("PUT")
	protectedAPI.HandleFunc("/posts/{id:[0-9]+}", postController.APIDelete).Methods("DELETE")
	protectedAPI.HandleFunc("/posts/{id:[0-9]+}/close", postController.APIClose).Methods("POST")
	protectedAPI.HandleFunc("/stats", postController.APIStats).Methods("GET")
	protectedAPI.HandleFunc("/categories", postController.APICategories).Methods("GET")

	// Web routes
	router.HandleFunc("/login", authController.LoginPage).Methods("GET")
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/register", authController.Register).Methods("POST")
	router.HandleFunc("/logout", authController.Logout).Methods("POST")

	web := router.NewRoute().Subrouter()
	web.Use(middleware.RequireSession(auth))
	web.HandleFunc("/", postController.Dashboard).Methods("GET")
	web.HandleFunc("/posts", postController.Create).Methods("POST")
	web.HandleFunc("/posts/{id:[0-9]+}/edit", postController.EditForm).Methods("GET")
	web.HandleFunc("/posts/{id:[0-9]+}/edit", postController.Update).Methods("POST")
	web.HandleFunc("/posts/{id:[0-9]+}/close", postController.Close).Methods("POST")
	web.HandleFunc("/posts/{id:[0-9]+}/delete", postController.Delete).Methods("POST")

	return router
}
