package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(sessions *SessionMiddleware, authController *AuthController, roomController *RoomController, userController *UserController, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	if len(allowedOrigins) > 0 {
		config := cors.DefaultConfig()
		config.AllowOrigins = allowedOrigins
		config.AllowCredentials = true
		config.AllowHeaders = []string{"Content-Type", "Origin", "Accept"}
		config.AllowMethods = []string{"GET", "POST", "HEAD", "OPTIONS"}
		config.ExposeHeaders = []string{"Set-Cookie"}
		router.Use(cors.New(config))
	}

	router.Use(sessions.Resolve())

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/login", authController.LoginPage)
	router.POST("/login", authController.Login)
	router.GET("/logout", authController.Logout)
	router.GET("/register", authController.RegisterPage)
	router.POST("/register", authController.Register)

	router.GET("/", roomController.Home)
	router.GET("/room/:roomID", roomController.Room)
	router.GET("/topics", roomController.Topics)
	router.GET("/activity", roomController.Activity)
	router.GET("/profile/:userID", userController.Profile)

	authed := router.Group("/", sessions.Require())
	authed.POST("/room/:roomID", roomController.PostMessage)
	authed.GET("/update-user", userController.UpdateProfileForm)
	authed.POST("/update-user", userController.UpdateProfile)
	authed.GET("/create-room", roomController.CreateRoomForm)
	authed.POST("/create-room", roomController.CreateRoom)
	authed.GET("/update-room/:roomID", roomController.UpdateRoomForm)
	authed.POST("/update-room/:roomID", roomController.UpdateRoom)
	authed.GET("/delete-room/:roomID", roomController.DeleteRoomConfirm)
	authed.POST("/delete-room/:roomID", roomController.DeleteRoom)
	authed.GET("/delete-message/:messageID", roomController.DeleteMessageConfirm)
	authed.POST("/delete-message/:messageID", roomController.DeleteMessage)

	return router
}
