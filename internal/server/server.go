package server

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"jobboard-backend/internal/controller/file"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/notifier"
)

// MyServer contain port which server are running on, database instance and
// the storage and mail backends shared by the controllers
type MyServer struct {
	Port     int
	DB       *database.DBinstanceStruct
	Storage  file.StorageClient
	Notifier notifier.Notifier
}

// NewServer construct new Server instance
func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialized: %s", err)
	}

	storage, err := selectStorage()
	if err != nil {
		log.Fatalf("Storage failed to initialized: %s", err)
	}

	myServer := &MyServer{
		Port:     port,
		DB:       db,
		Storage:  storage,
		Notifier: selectNotifier(),
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      myServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}

// selectStorage picks GCS when BUCKET_NAME is set, otherwise a local
// directory (UPLOAD_DIR, default ./uploads).
func selectStorage() (file.StorageClient, error) {
	if bucket := os.Getenv("BUCKET_NAME"); bucket != "" {
		return file.NewCloudStorageClient(bucket)
	}

	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "./uploads"
	}
	return file.NewLocalStorageClient(dir)
}

// selectNotifier sends real mail when SMTP_HOST is set, otherwise logs.
func selectNotifier() notifier.Notifier {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return notifier.NewLogNotifier(slog.Default())
	}

	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}

	return notifier.NewSMTPNotifier(
		host,
		port,
		os.Getenv("SMTP_USERNAME"),
		os.Getenv("SMTP_PASSWORD"),
	)
}
