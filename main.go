package main

import (
	"log"
	"net/http"

	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/config"
	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/database"
	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/handlers"
	"github.com/AmmarTyoPasaribu/RandR-ShoeStore/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Connect to database
	db, err := database.Connect(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Initialize tables
	if err := db.InitializeTables(); err != nil {
		log.Fatal("Failed to initialize tables:", err)
	}

	// Initialize Cloudinary (optional; image uploads 503 without it)
	if config.AppConfig.CloudinaryURL != "" {
		if err := services.InitializeCloudinary(config.AppConfig.CloudinaryURL); err != nil {
			log.Printf("Failed to initialize Cloudinary: %v", err)
		} else {
			log.Printf("Cloudinary initialized successfully")
		}
	}

	// Initialize handlers and the recommendation service
	handlers.InitializeHandlers(db)
	services.InitializeRecommender(db)

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.Default()

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Configure this properly for production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           3600,
	})

	router.Use(func(c *gin.Context) {
		corsHandler.HandlerFunc(c.Writer, c.Request)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "RNR Backend API is running!",
			"service": "RNR Webstore Backend",
			"version": "2.0.0",
		})
	})

	// API routes
	api := router.Group("/api")
	{
		// Authentication routes
		api.POST("/users/register", handlers.RegisterUser)
		api.POST("/users/login", handlers.LoginUser)
		api.POST("/users/logout", handlers.AuthMiddleware(), handlers.LogoutUser)

		// User routes
		api.GET("/users", handlers.GetUsers)
		api.GET("/users/:user_id", handlers.AuthMiddleware(), handlers.GetUser)
		api.PUT("/users/profile/:user_id", handlers.AuthMiddleware(), handlers.UpdateProfile)
		api.DELETE("/users/:user_id", handlers.AuthMiddleware(), handlers.AdminMiddleware(), handlers.DeleteUser)

		// Shoe routes
		shoes := api.Group("/shoes", handlers.AuthMiddleware())
		{
			shoes.POST("", handlers.AddShoe)
			shoes.GET("", handlers.GetShoes)
			shoes.GET("/:shoe_detail_id", handlers.GetShoe)
			shoes.PUT("/:shoe_detail_id", handlers.UpdateShoe)
			shoes.DELETE("/:shoe_detail_id", handlers.DeleteShoe)
			shoes.POST("/:shoe_detail_id/image", handlers.UploadShoeImage)
		}

		// Category routes
		api.POST("/categories", handlers.AddCategory)
		api.GET("/categories", handlers.GetCategories)
		api.GET("/categories/:category_id", handlers.GetCategory)
		api.PUT("/categories/:category_id", handlers.UpdateCategory)
		api.DELETE("/categories/:category_id", handlers.DeleteCategory)

		// Cart routes
		cart := api.Group("/cart", handlers.AuthMiddleware())
		{
			cart.GET("", handlers.GetCart)
			cart.GET("/user/:user_id", handlers.GetCartForUser)
			cart.GET("/item/:id_cart", handlers.GetCartItem)
			cart.POST("", handlers.AddToCart)
			cart.PUT("/:id_cart", handlers.UpdateCartItem)
			cart.DELETE("/:id_cart", handlers.RemoveFromCart)
		}

		// Wishlist routes
		api.GET("/wishlist", handlers.GetAllWishlistItems)
		api.GET("/wishlist/user/:user_id", handlers.GetWishlistForUser)
		api.GET("/wishlist/item/:id_wishlist", handlers.GetWishlistItem)
		api.POST("/wishlist", handlers.AddToWishlist)
		api.PUT("/wishlist/:id_wishlist", handlers.UpdateWishlistItem)
		api.DELETE("/wishlist/:id_wishlist", handlers.RemoveFromWishlist)

		// Order routes
		orders := api.Group("/orders", handlers.AuthMiddleware())
		{
			orders.POST("", handlers.CreateOrder)
			orders.GET("", handlers.GetOrders)
			orders.GET("/user/:user_id", handlers.GetOrdersForUser)
			orders.PUT("/:order_id", handlers.UpdateOrder)
			orders.DELETE("/:order_id", handlers.DeleteOrder)
		}

		// Payment routes
		api.POST("/payments", handlers.ProcessPayment)
		api.GET("/payments", handlers.GetPayments)
		api.GET("/payments/:payment_id", handlers.GetPayment)
		api.PUT("/payments/:payment_id", handlers.UpdatePaymentStatus)
		api.DELETE("/payments/:payment_id", handlers.DeletePayment)

		// Interaction routes
		api.GET("/user_interactions", handlers.GetInteractions)
		api.POST("/user_interactions", handlers.CreateInteraction)
		api.PUT("/user_interactions/:interaction_id", handlers.UpdateInteraction)
		api.DELETE("/user_interactions/:interaction_id", handlers.DeleteInteraction)

		// Recommendation routes
		api.POST("/train_recommendation", handlers.TrainRecommendations)
		api.GET("/shoe_recommendations", handlers.GetAllRecommendations)
		api.GET("/shoe_recommendations/user/:user_id", handlers.GetRecommendationsForUser)
		api.GET("/shoe_recommendations/item/:id_shoe_recommendation", handlers.GetRecommendation)
		api.POST("/shoe_recommendations", handlers.AddRecommendation)
		api.PUT("/shoe_recommendations/:id_shoe_recommendation", handlers.UpdateRecommendation)
		api.DELETE("/shoe_recommendations/:id_shoe_recommendation", handlers.RemoveRecommendation)
	}

	port := config.AppConfig.ServerPort
	log.Printf("Server running on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
