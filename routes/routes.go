package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hands-live/api-go/controllers"
	"github.com/hands-live/api-go/middleware"
	"github.com/hands-live/api-go/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, mailer services.Mailer) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db)
	commentController := controllers.NewCommentController(db)
	contactController := controllers.NewContactController(db, mailer)
	uploadController := controllers.NewUploadController()

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/refresh-token", authController.RefreshToken)
		public.POST("/contact", contactController.CreateInquiry)
	}

	// Read routes attach caller identity when a token is present but
	// never require one.
	browse := r.Group("/api")
	browse.Use(middleware.OptionalAuthMiddleware())
	{
		browse.GET("/posts", postController.ListPosts)
		browse.GET("/posts/:id", postController.GetPostDetail)
		browse.GET("/posts/:id/comments", commentController.ListComments)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)

		// User routes
		protected.GET("/profile", authController.GetProfile)
		protected.PUT("/profile", authController.UpdateProfile)

		// Setup other routes within the protected group
		SetupPostRoutes(protected, postController)
		SetupCommentRoutes(protected, commentController)
		SetupUploadRoutes(protected, uploadController)
	}
}
