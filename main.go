package main

import "github.com/killallgit/book-search/cmd"

// @title           Book Search API
// @version         1.0.0
// @description     Debounced book search over the Open Library search API
// @termsOfService  http://swagger.io/terms/
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/book-search
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
