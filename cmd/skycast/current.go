package main

import (
	"fmt"

	"github.com/sandevgo/skycast/internal/config"
	"github.com/sandevgo/skycast/internal/core"
	"github.com/sandevgo/skycast/internal/providers/geo"
	"github.com/sandevgo/skycast/internal/providers/image"
	"github.com/sandevgo/skycast/internal/service/ui"
	"github.com/sandevgo/skycast/pkg/log"
	"github.com/spf13/cobra"
)

var (
	currentLat float64
	currentLon float64
)

var currentCmd = &cobra.Command{
	Use:   "current [city]",
	Short: "Show current conditions for a city or coordinates",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		d, err := initDeps(ctx)
		if err != nil {
			return err
		}
		defer d.db.Close()

		var rec core.WeatherRecord
		switch {
		case cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon"):
			rec, err = d.weather.FetchByCoords(ctx, currentLat, currentLon, d.units)
			if err != nil {
				return err
			}
			// The station name can be coarse; reverse geocoding gives the
			// proper city when a key is configured.
			geoCfg := config.NewGeoConfig(ctx)
			resolver := geo.NewResolver(geoCfg.GoogleAPIKey)
			if city, gerr := resolver.ReverseCity(currentLat, currentLon); gerr == nil && city != "" {
				rec.City = city
			} else if gerr != nil {
				log.FromCtx(ctx).Debug().Err(gerr).Msg("reverse geocoding unavailable")
			}

		case len(args) == 1:
			rec, err = d.weather.FetchByCity(ctx, args[0], d.units)
			if err != nil {
				return err
			}

		default:
			rec, err = d.weather.FetchByCity(ctx, d.app.DefaultCity, d.units)
			if err != nil {
				return err
			}
		}

		unit := "°C"
		if rec.Units == core.UnitsImperial {
			unit = "°F"
		}

		fmt.Println(ui.TitleStyle.Render(fmt.Sprintf("%s, %s", rec.City, rec.Country)))
		fmt.Printf("  %s (feels like %.0f%s), %s\n",
			ui.ValueStyle.Render(fmt.Sprintf("%.0f%s", rec.Temp, unit)), rec.FeelsLike, unit, rec.Description)
		fmt.Printf("  humidity %d%%, wind %.0f m/s at %d°, pressure %d hPa, visibility %.1f km\n",
			rec.Humidity, rec.WindSpeed, rec.WindDirection, rec.Pressure, float64(rec.Visibility)/1000)

		fmt.Printf("\n%s\n", ui.DescStyle.Render(d.describer.Describe(ctx, rec)))

		images := image.NewUnsplash(nil, "")
		if img, ierr := images.Resolve(ctx, rec.City); ierr == nil {
			fmt.Printf("\n%s %s\n", ui.FlagStyle.Render("Background:"), img.URL)
		}

		return nil
	},
}

func init() {
	currentCmd.Flags().Float64Var(&currentLat, "lat", 0, "latitude (used with --lon)")
	currentCmd.Flags().Float64Var(&currentLon, "lon", 0, "longitude (used with --lat)")
	rootCmd.AddCommand(currentCmd)
}
