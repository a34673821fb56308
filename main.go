package main

import (
	"log"
	"os"

	"apartlive-server/routes"
	"apartlive-server/storage"
	"apartlive-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	// JWT Verifiers
	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/google", routes.GoogleLoginOrSignUp)
		user.Post("/apple", routes.AppleLoginOrSignUp)
		user.Post("/logout", accessTokenVerifierMiddleware, routes.Logout)
		user.Get("/{id}", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetUser)
		user.Patch("/{id}", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.UpdateUserProfile)

		user.Get("/{id}/bookings",
			accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetUserBookings)
		user.Post("/{id}/bookings/{apartmentId:uint}",
			accessTokenVerifierMiddleware, utils.UserIDMiddleware, utils.UserIDFromTokenMiddleware, routes.BookApartment)
		user.Delete("/{id}/bookings/{apartmentId:uint}",
			accessTokenVerifierMiddleware, utils.UserIDMiddleware, utils.UserIDFromTokenMiddleware, routes.CancelBooking)
	}

	apartment := app.Party("/api/apartment")
	{
		apartment.Get("/", routes.GetApartments)
		apartment.Get("/{id:uint}", routes.GetApartment)
		apartment.Get("/{apartmentId:uint}/reviews", routes.ListApartmentReviews)
		apartment.Post("/{apartmentId:uint}/reviews",
			accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateApartmentReview)
	}

	view := app.Party("/api/view")
	{
		view.Use(accessTokenVerifierMiddleware)
		view.Post("/init", routes.InitView)
		view.Get("/apartments", routes.GetViewApartments)
		view.Post("/apartments/{index:int}/book", routes.ViewBook)
		view.Post("/apartments/{index:int}/cancel", routes.ViewCancel)
		view.Post("/apartments/{index:int}/photos/next", routes.ViewNextPhoto)
		view.Post("/apartments/{index:int}/photos/prev", routes.ViewPrevPhoto)
		view.Get("/apartments/{index:int}/reviews", routes.GetViewReviews)
		view.Post("/apartments/{index:int}/reviews", routes.SubmitViewReview)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
