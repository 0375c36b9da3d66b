package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/roadtrip-genie/internal/api"
	"github.com/FACorreiaa/roadtrip-genie/internal/api/itinerary"
	"github.com/FACorreiaa/roadtrip-genie/internal/container"
	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an itinerary and print it as JSON",
	Example: `  roadtrip generate --from "Denver, CO" --to "Moab, UT" --days 4 --start-date 2025-06-01 \
    --interests photography,geology --vehicle suv --round-trip`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := container.NewContainer(cmd.Context(), &cfg, logger)
		if err != nil {
			return err
		}
		defer c.Close()
		return generateRunE(c.ItineraryService, cmd.OutOrStdout(), cmd)
	},
}

// generateRunE builds the request from flags, runs it through svc and writes
// the itinerary to out.
func generateRunE(svc itinerary.ItineraryService, out io.Writer, cmd *cobra.Command) error {
	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}

	doc, err := svc.Generate(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("generate itinerary: %w", err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

func requestFromFlags(cmd *cobra.Command) (types.ItineraryRequest, error) {
	flags := cmd.Flags()
	from, _ := flags.GetString("from")
	to, _ := flags.GetString("to")
	days, _ := flags.GetInt("days")
	startDate, _ := flags.GetString("start-date")
	persons, _ := flags.GetInt("persons")
	vehicle, _ := flags.GetString("vehicle")
	activity, _ := flags.GetString("activity")
	interests, _ := flags.GetStringSlice("interests")
	roundTrip, _ := flags.GetBool("round-trip")
	offroad, _ := flags.GetBool("offroad")

	start := time.Now()
	if startDate != "" {
		var err error
		start, err = time.Parse(time.DateOnly, startDate)
		if err != nil {
			return types.ItineraryRequest{}, fmt.Errorf("invalid --start-date %q: want YYYY-MM-DD", startDate)
		}
	}

	req := types.ItineraryRequest{
		StartLocation:   from,
		EndLocation:     to,
		TripDuration:    days,
		StartDate:       types.Date{Time: start},
		NumberOfPersons: persons,
		IsRoundTrip:     roundTrip,
		VehicleType:     types.VehicleType(vehicle),
		ActivityLevel:   types.ActivityLevel(activity),
		IncludeOffroad:  offroad,
	}
	for _, i := range interests {
		req.Interests = append(req.Interests, types.InterestCategory(i))
	}
	req.ApplyDefaults()

	if err := api.ValidateStruct(req); err != nil {
		return types.ItineraryRequest{}, err
	}
	return req, nil
}

func addGenerateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("from", "", "Start location")
	f.String("to", "", "End location")
	f.Int("days", 3, "Trip duration in days (1-30)")
	f.String("start-date", "", "First day of the trip, YYYY-MM-DD (default today)")
	f.Int("persons", 2, "Number of travelers (1-12)")
	f.String("vehicle", string(types.VehicleSUV), "Vehicle type: sedan, suv, crossover, truck, van")
	f.String("activity", string(types.ActivityModerate), "Activity level: easy, moderate, challenging, expert")
	f.StringSlice("interests", nil, "Comma separated interests")
	f.Bool("round-trip", false, "Return to the start location")
	f.Bool("offroad", false, "Include off-road segments")
}

func init() {
	addGenerateFlags(generateCmd)
	_ = generateCmd.MarkFlagRequired("from")
	_ = generateCmd.MarkFlagRequired("to")
}
