package main

import (
	"encode-service/app"
)

func main() {
	app.Run()
}
