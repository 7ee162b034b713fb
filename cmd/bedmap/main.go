// cmd/bedmap/main.go
package main

import (
	"bedmap/internal/app"
	"bedmap/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
