package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")

	dishes := api.Group("/dishes")
	dishes.GET("", s.listDishes)
	dishes.POST("", s.createDish)
	dishes.GET("/:id", s.getDish)
	dishes.PATCH("/:id", s.updateDish)
	dishes.DELETE("/:id", s.deleteDish)

	weather := api.Group("/weather")
	weather.GET("", s.getWeather)
	weather.GET("/live", s.getLiveWeather)
}
