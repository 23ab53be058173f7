package main

import (
	"log/slog"

	redisadapter "github.com/couchcryptid/purpleair-aqi/internal/adapter/redis"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/spf13/cobra"
)

func latestCmd() *cobra.Command {
	var (
		out       outputFlags
		sensorID  string
		redisAddr string
	)

	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Display the last reading stored by aqi-etl",
		Long: `Read the most recent evaluated reading for a sensor from the Redis store that
aqi-etl maintains, without contacting PurpleAir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := redisadapter.Dial(cmd.Context(), redisAddr)
			if err != nil {
				return out.fail(cmd, err)
			}
			store := redisadapter.NewStore(client, 0, slog.Default())
			defer store.Close()

			result, err := store.Latest(cmd.Context(), sensorID)
			if err != nil {
				return out.fail(cmd, err)
			}
			return out.write(cmd, result)
		},
	}

	cmd.Flags().StringVar(&sensorID, "sensor", sharedcfg.EnvOrDefault("SENSOR_ID", "34663"), "PurpleAir sensor ID")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", sharedcfg.EnvOrDefault("REDIS_ADDR", "localhost:6379"), "Redis address")
	out.register(cmd)

	return cmd
}
