package internal

import (
	"net/http"

	"psgdle/internal/controllers"
	"psgdle/internal/providers"
	"psgdle/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/profile", http.HandlerFunc(apiController.CreateProfile))
	routers.Get("/players", http.HandlerFunc(apiController.GetPlayers))
	routers.Get("/state", http.HandlerFunc(apiController.GetState))
	routers.Post("/guess", http.HandlerFunc(apiController.SubmitGuess))
	routers.Post("/hint", http.HandlerFunc(apiController.ToggleHint))
	routers.Post("/lineup/place", http.HandlerFunc(apiController.PlaceLineup))
	routers.Post("/lineup/clear", http.HandlerFunc(apiController.ClearLineup))
	routers.Post("/lineup/validate", http.HandlerFunc(apiController.ValidateLineup))
	routers.Get("/stats", http.HandlerFunc(apiController.GetStatistics))
	routers.Post("/reset", http.HandlerFunc(apiController.ResetSession))
	routers.Post("/stats/reset", http.HandlerFunc(apiController.ResetStatistics))
	routers.Get("/surprise", http.HandlerFunc(apiController.GetSurprise))
	return routers
}
