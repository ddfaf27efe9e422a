package main

import (
	"fmt"
	"os"

	"foundermatch-backend/cmd/foundermatch-cli/cmd"
)

func main() {
	baseUrl, ok := os.LookupEnv("PROFILES_BASE_URL")
	if !ok {
		fmt.Println("You should specify the base url of the profiles service in the environment variable PROFILES_BASE_URL.")
		os.Exit(1)
	}
	cmd.BaseUrl = baseUrl

	cmd.Execute()
}
