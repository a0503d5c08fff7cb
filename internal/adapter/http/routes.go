package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Requests *LoanRequestHandler
	Offers   *LoanOfferHandler
}

// RegisterRoutes mounts the public routes and, behind auth, the ledger
// routes. idem wraps the mutating ledger routes only and runs after auth.
func RegisterRoutes(e *echo.Echo, h Handlers, auth, idem echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)
	e.GET("/ready", h.Health.Ready)
	e.POST("/register", h.Auth.Register)
	e.POST("/login", h.Auth.Login)

	e.GET("/loan-requests", h.Requests.List, auth)
	e.POST("/loan-requests", h.Requests.Submit, auth, idem)
	e.GET("/loan-offers", h.Offers.List, auth)
	e.POST("/loan-offers", h.Offers.Create, auth, idem)
	e.POST("/loan-offers/:offer_id/accept", h.Offers.Accept, auth, idem)
	e.POST("/loan-offers/:offer_id/complete", h.Offers.Complete, auth, idem)
}
