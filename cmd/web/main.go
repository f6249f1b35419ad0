// Command web serves the property marketplace HTTP API.
package main

import "propmatch_backend/internal/app"

func main() {
	app.Run()
}
