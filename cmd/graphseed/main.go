// cmd/graphseed/main.go
package main

import (
	"graphseed/internal/app"
	"graphseed/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
