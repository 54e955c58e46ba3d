// Standalone GraphQL server: go run ./cmd/graphql
package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"warehouse.GO/api"
	_ "warehouse.GO/api/graphql"
	"warehouse.GO/config"
)

func main() {
	config.LoadEnv()
	config.InitRedis()

	db, err := config.NewDB()
	if err != nil {
		log.Fatal("db:", err)
	}

	e := echo.New()
	e.Use(middleware.Recover())
	api.ApplyRoutes(e, db)

	fonts := []string{"banner", "big", "block", "slant", "standard", "small", "doom", "larry3d"}
	figure.NewFigure("Warehouse GQL", fonts[rand.Intn(len(fonts))], true).Print()
	fmt.Println("Standalone GraphQL server")

	port := config.App().Port
	log.Printf("GraphQL at http://localhost:%s/graphql  Playground at http://localhost:%s/playground", port, port)
	e.Logger.Fatal(e.Start(":" + port))
}
