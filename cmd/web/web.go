package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/brandlink/brandlink-be/config"
	"github.com/brandlink/brandlink-be/controllers"
	"github.com/brandlink/brandlink-be/db/mysql"
	"github.com/brandlink/brandlink-be/routes"
	"github.com/brandlink/brandlink-be/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	db, err := mysql.GetDatabase(&mysql.Config{
		User: cfg.DBUser,
		Pass: cfg.DBPass,
		Host: cfg.DBHost,
		Name: cfg.DBName,
	})
	if err != nil {
		log.Fatal("Received err when attempting to connect to DB", err)
	}
	defer db.Close()

	if err = configureFirebaseCredentials(); err != nil {
		log.Fatal("an error occurred while configuring firebase credentials", err)
	}
	app, err := firebase.NewApp(context.Background(), nil)
	if err != nil {
		log.Fatalf("error initializing firebase: %v\n", err)
	}
	authClient, err := app.Auth(context.Background())
	if err != nil {
		log.Fatal("error initializing auth client", err)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.FEOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	mediaBucket, err := services.NewStorageBucket(context.Background(), app, cfg.MediaBucket)
	if err != nil {
		log.Fatal("An error occurred while connecting to the media uploads bucket", err)
	}

	suggestionController, err := controllers.NewSuggestionController(context.Background(), db)
	if err != nil {
		log.Fatal("An error occurred while initializing the suggestion controller", err)
	}

	routes.AddHealthCheckRoutes(&r.RouterGroup)
	routes.AddPostRoutes(&r.RouterGroup, db, authClient, mediaBucket)
	routes.AddEngagementRoutes(&r.RouterGroup, db, authClient)
	routes.AddPollRoutes(&r.RouterGroup, db, authClient)
	routes.AddFeedRoutes(&r.RouterGroup, db, authClient)
	routes.AddModerationRoutes(&r.RouterGroup, db, authClient)
	routes.AddUserRoutes(&r.RouterGroup, db, suggestionController, authClient)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Error when attempting to run web server", err)
	}
}

const (
	CredentialsPathEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
	CredentialsJsonEnvVar = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
	TargetCredentialsFile = "./google-application-credentials.json"
)

func configureFirebaseCredentials() error {
	credentialsPath, hasCredentialsPath := os.LookupEnv(CredentialsPathEnvVar)
	if hasCredentialsPath {
		log.Printf("Credentials path detected in env. Expecting credentails to be at %v\n", credentialsPath)
		return nil
	}
	credentialsJson, hasCredentialsJson := os.LookupEnv(CredentialsJsonEnvVar)
	if hasCredentialsJson {
		log.Println("Credentials JSON string detected in env.")
		err := os.WriteFile(TargetCredentialsFile, []byte(credentialsJson), 400)
		if err != nil {
			return fmt.Errorf("error writing credentials to temp file, %w", err)
		}
		err = os.Setenv(CredentialsPathEnvVar, TargetCredentialsFile)
		if err != nil {
			return fmt.Errorf("error setting %v env var %w", CredentialsPathEnvVar, err)
		}
		return nil
	}
	return fmt.Errorf("must specify either %v (a path)"+
		" or %v (credentials as JSON string)", CredentialsPathEnvVar, CredentialsJsonEnvVar)
}
