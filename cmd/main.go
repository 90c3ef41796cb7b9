// cmd/main.go
package main

import (
	"go-quiz-api/app"

	_ "go-quiz-api/docs"
)

// @title           Go-Quiz API
// @version         1.0
// @description     CS interview quiz API with JWT session authentication.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
