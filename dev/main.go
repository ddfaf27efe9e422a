// Command dev creates a local development environment for profilesd:
// an empty profile database under dev/.state and a starter config file
// next to it.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	profilesdb "foundermatch-backend/services/profiles/db"

	_ "modernc.org/sqlite"
)

const stateDir = "dev/.state"

var starterConfig = `{
	// port the http api listens on
	port: 8470,
	debug: true,
	database: {
		file: "dev/.state/profiles.db",
	},
	// scraper session credentials, copy these out of your browser's
	// cookie store after logging in
	scraper: {
		base_url: "https://www.startupschool.org/cofounder-matching/candidate",
		sso_key: "",
		sus_session: "",
	},
}
`

func createDb(filename string, schema string) error {
	path := filepath.Join(stateDir, filename)
	_, err := os.Stat(path)
	if err == nil {
		fmt.Println("database already created at", path)
		return nil
	}

	fmt.Println("creating database at", path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.Exec(schema)
	return err
}

// profilesd reads config.json5 from its working directory, so the
// starter config goes in the repository root rather than dev/.state
func createConfig() error {
	path := "config.json5"
	_, err := os.Stat(path)
	if err == nil {
		fmt.Println("config already created at", path)
		return nil
	}

	fmt.Println("creating config at", path)
	return os.WriteFile(path, []byte(starterConfig), 0666)
}

func create(recreate bool) error {
	_, err := os.Stat("go.mod")
	if os.IsNotExist(err) {
		return fmt.Errorf("the dev environment must be created in the repository root (the same directory as the 'go.mod' file)")
	}

	if recreate {
		err = os.RemoveAll(stateDir)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	err = os.MkdirAll(stateDir, 0777)
	if err != nil && !os.IsExist(err) {
		return err
	}

	err = createDb("profiles.db", profilesdb.Schema)
	if err != nil {
		return err
	}
	return createConfig()
}

func main() {
	recreate := flag.Bool("recreate", false, "recreate the dev environment from scratch")
	flag.Parse()

	err := create(*recreate)
	if err != nil {
		slog.Error("failed to create dev environment", "err", err.Error())
		os.Exit(1)
	}

	slog.Info("dev environment created successfully!")
}
