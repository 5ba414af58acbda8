package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"minibank/internal/auth"
	"minibank/internal/handler"
	"minibank/internal/logging"
	"minibank/internal/view"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	log logging.Logger,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	transactionHandler *handler.TransactionHandler,
) error {
	renderer, err := view.NewRenderer()
	if err != nil {
		return err
	}
	e.Renderer = renderer
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// Secured routes (require a bearer token)
	secured := e.Group("", auth.Middleware(jwtService, log))
	secured.GET("/me", transactionHandler.Me)
	secured.GET("/transactions", transactionHandler.Transactions)
	secured.POST("/deposit", transactionHandler.Deposit)
	secured.POST("/withdraw", transactionHandler.Withdraw)

	return nil
}

func requestLogger(log logging.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				args = append(args, "error", v.Error.Error())
			}
			log.Info(c.Request().Context(), "request", args...)
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
