//go:build !cli
// +build !cli

package main

import (
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"warehouse.GO/api"
	_ "warehouse.GO/api/catalog"
	_ "warehouse.GO/api/graphql"
	_ "warehouse.GO/api/health"
	_ "warehouse.GO/api/location"
	_ "warehouse.GO/api/realtime"
	_ "warehouse.GO/api/report"
	_ "warehouse.GO/api/stock"
	"warehouse.GO/config"
	"warehouse.GO/core/auth"
	"warehouse.GO/core/validate"
	"warehouse.GO/html"
	"warehouse.GO/model/migrations"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	config.InitRedis()

	db, err := config.NewDB()
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	sqldb, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get DB instance: %v", err)
	}
	if err := sqldb.Ping(); err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := migrations.Migrate(db, config.MySQLDSN()); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}
	log.Println("Database connection successful.")

	e := echo.New()
	e.Validator = validate.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			res := c.Response()
			res.Before(func() {
				if res.Header().Get("X-Request-Duration-ms") == "" {
					res.Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
				}
			})
			return next(c)
		}
	})

	t, err := html.NewTemplate()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}
	e.Renderer = t
	for _, tmpl := range t.Templates.Templates() {
		log.Println("Loaded template:", tmpl.Name())
	}

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware(db))
	api.ApplyModules(apiGroup, db)
	api.ApplyRoutes(e, db)

	fonts := []string{"banner", "big", "block", "slant", "standard", "small", "doom", "larry3d"}
	figure.NewFigure(config.App().AppName, fonts[rand.Intn(len(fonts))], true).Print()
	fmt.Println()

	port := config.App().Port
	log.Printf("Server running on :%s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
