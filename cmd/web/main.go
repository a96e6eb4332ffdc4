// @title           Natours API
// @version         1.0
// @description     REST API for browsing, reviewing and booking nature tours.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /

package main

import "tourbook/internal/app"

func main() {
	app.Run()
}
