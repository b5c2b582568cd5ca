package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/CacviUn/CU-Backend/internal/dashboard"
	"github.com/CacviUn/CU-Backend/internal/db"
	"github.com/CacviUn/CU-Backend/internal/metrics"
	"github.com/CacviUn/CU-Backend/internal/middleware"
	"github.com/CacviUn/CU-Backend/internal/registry"
	"github.com/CacviUn/CU-Backend/internal/report"
	"github.com/CacviUn/CU-Backend/internal/zones"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "CACVIUN Backend is running!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	zonesPath := os.Getenv("ZONES_PATH")
	if zonesPath == "" {
		zonesPath = "internal/zones/data/zones.yaml"
	}

	zoneMap, err := zones.Load(zonesPath)
	if err != nil {
		log.Fatal("Failed to load zone dataset: ", err)
	}
	log.Printf("[zones] loaded %d campus zones from %s", len(zoneMap.Zones()), zonesPath)

	categories := registry.DefaultCategories()
	zoneLabels := registry.NewZoneLabels(zoneMap.Labels())
	locator := zones.NewLocator(zoneMap)

	report.Init()

	store := report.NewGormStore(db.DB)
	enricher := report.NewEnricher(categories, locator)
	projector := report.NewProjector(categories, zoneLabels)

	reportHandler := report.NewHandler(store, enricher, projector)
	dashboardHandler := dashboard.NewHandler(store, projector, categories)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)
	r.Handle("/metrics", metrics.Handler())

	r.Mount("/report", reportHandler.SetupRoutes())
	r.Mount("/dashboard", dashboardHandler.SetupRoutes())

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
