package main

import (
	"log"
	"net/http"

	"inventario_api/internal/config"
	"inventario_api/internal/database"
	"inventario_api/internal/handlers"
	"inventario_api/internal/services"
)

func main() {
	// Load environment variables from .env files
	config.LoadEnvFile(".env")
	config.LoadEnvFile("env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	log.Println("Database connected and migrated successfully!")

	recordService := services.NewRecordService(db)
	exportService := services.NewExportService(db)
	recordHandler := handlers.NewRecordHandler(recordService, exportService, cfg.DevMode)

	r := handlers.NewRouter(recordHandler)
	handlers.RegisterStatic(r, cfg.StaticDir, cfg.DataDir)

	// CORS stays outermost so preflight requests bypass the credential gate.
	handler := handlers.CORSMiddleware(
		handlers.BasicAuthMiddleware(cfg.AuthUser, cfg.AuthPasswordHash)(r),
	)

	log.Printf("🚀 Inventario backend started on :%s", cfg.Port)
	log.Println("📡 Available endpoints:")
	log.Println("      POST   /save        - Save scanned record")
	log.Println("      PUT    /save/{id}   - Update record")
	log.Println("      DELETE /delete/{id} - Delete record")
	log.Println("      GET    /records     - List session records")
	log.Println("      GET    /recover     - List session records (alias)")
	log.Println("      GET    /export      - Export xlsx and purge session")

	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
