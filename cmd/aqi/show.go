package main

import (
	"log/slog"
	"time"

	"github.com/couchcryptid/purpleair-aqi/internal/adapter/purpleair"
	"github.com/couchcryptid/purpleair-aqi/internal/domain"
	"github.com/couchcryptid/purpleair-aqi/internal/observability"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func showCmd() *cobra.Command {
	var (
		out      outputFlags
		sensorID string
		baseURL  string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Fetch and display the current AQI for a sensor",
		Long: `Fetch the sensor's latest reading from PurpleAir and display the corrected AQI.
Defaults come from SENSOR_ID and PURPLEAIR_URL when set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			metrics := observability.NewMetricsWith(prometheus.NewRegistry())
			client := purpleair.NewClient(baseURL, timeout, 0, metrics, slog.Default())

			snap, err := client.FetchSnapshot(cmd.Context(), sensorID)
			if err != nil {
				return out.fail(cmd, err)
			}
			result, err := domain.Evaluate(snap)
			if err != nil {
				return out.fail(cmd, err)
			}
			return out.write(cmd, result)
		},
	}

	cmd.Flags().StringVar(&sensorID, "sensor", sharedcfg.EnvOrDefault("SENSOR_ID", "34663"), "PurpleAir sensor ID")
	cmd.Flags().StringVar(&baseURL, "url", sharedcfg.EnvOrDefault("PURPLEAIR_URL", "https://www.purpleair.com/json"), "PurpleAir JSON endpoint")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	out.register(cmd)

	return cmd
}
