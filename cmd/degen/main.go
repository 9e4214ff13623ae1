// cmd/degen/main.go
package main

import (
	"degen/internal/app"
	"degen/internal/appshell"
)

func main() {
	appshell.Main(app.RunIO)
}
