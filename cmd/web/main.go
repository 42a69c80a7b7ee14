package main

import "eventomir_backend/internal/app"

func main() {
	app.Run()
}
