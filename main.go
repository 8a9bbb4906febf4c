package main

import (
	"github.com/confluencehack/registration_service/config"
	"github.com/confluencehack/registration_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
