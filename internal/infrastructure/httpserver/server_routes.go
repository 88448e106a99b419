package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/live", s.livenessCheck)
	s.echo.GET("/health/ready", s.readinessCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api")
	api.GET("/test", s.testEndpoint)
	api.GET("/seasons", s.getSeasons)

	players := api.Group("/players")
	players.GET("/search", s.searchPlayers)
	players.GET("/:id", s.getPlayer)
	players.GET("/:id/shots", s.getPlayerShots)
	players.GET("/:id/stats", s.getPlayerStats)

	cache := api.Group("/cache")
	cache.GET("/stats", s.getCacheStats)
	cache.DELETE("/players/:id", s.clearPlayerCache)
	cache.POST("/warm", s.warmCache)
}
