package main

import "eventsapi/cmd/server/cmd"

// @title Events API
// @version 1.0
// @description Event registration REST API with HAL responses and an OAuth2 password grant.
// @BasePath /
// @securityDefinitions.basic BasicAuth
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cmd.Execute()
}
