package main

import (
	"os"

	"github.com/rbac-console/rbac-console/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
