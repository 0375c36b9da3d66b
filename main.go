package main

import "github.com/FACorreiaa/roadtrip-genie/cmd"

// @title           AI Roadtrip Genie API
// @version         2.3.1
// @description     Generates, refines, sells and exports AI-planned roadtrip itineraries.
// @BasePath        /
func main() {
	cmd.Execute()
}
