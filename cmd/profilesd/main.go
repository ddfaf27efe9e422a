package main

import (
	"context"
	"os"

	"foundermatch-backend/lib/configutil"
	configlibsql "foundermatch-backend/lib/configutil/libsql"
	"foundermatch-backend/lib/scrapers/startupschool"
	"foundermatch-backend/lib/serviceutil"
	"foundermatch-backend/lib/telemetry"
	"foundermatch-backend/services/profiles"
	profilesdb "foundermatch-backend/services/profiles/db"

	"github.com/gorilla/mux"
)

type Config struct {
	Port     int                       `json:"port"`
	Debug    bool                      `json:"debug"`
	Database configlibsql.Struct       `json:"database"`
	Scraper  startupschool.Credentials `json:"scraper"`
}

// session tokens usually come from the environment in deployments, the
// config file works for local development
func credentialsFromEnv(creds startupschool.Credentials) startupschool.Credentials {
	if creds.BaseUrl == "" {
		creds.BaseUrl = os.Getenv("FETCH_BASE_URL")
	}
	if creds.SsoKey == "" {
		creds.SsoKey = os.Getenv("SSO_KEY")
	}
	if creds.SusSession == "" {
		creds.SusSession = os.Getenv("SUS_SESSION")
	}
	return creds
}

func main() {
	ctx := serviceutil.SignalContext()

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	telemetry.InitSlog(config.Debug)

	db, err := config.Database.OpenDB(profilesdb.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	t, err := telemetry.SetupFromEnv(ctx, "profilesd")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	service := profiles.NewService(db, profiles.Options{
		Credentials: credentialsFromEnv(config.Scraper),
	})

	router := mux.NewRouter()
	profiles.RegisterRoutes(router, service)

	port := config.Port
	if port == 0 {
		port = 8470
	}
	go serviceutil.StartHttpServer(port, router)

	<-ctx.Done()
}
