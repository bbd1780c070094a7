package main

import "github.com/promiseroad/backend/cmd/promiseroad/commands"

// @title Promise Road API
// @version 1.0
// @description REST API for Christian bloggers and video creators: blog posts, videos, categories, playlists and comments.

// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	commands.Execute()
}
