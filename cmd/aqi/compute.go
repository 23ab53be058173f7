package main

import (
	"time"

	"github.com/couchcryptid/purpleair-aqi/internal/domain"
	"github.com/spf13/cobra"
)

func computeCmd() *cobra.Command {
	var (
		out  outputFlags
		snap domain.SensorSnapshot
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Evaluate raw channel readings without contacting PurpleAir",
		Long: `Apply the EPA correction and AQI breakpoints to readings given on the command line.
Values are parsed the way PurpleAir values are: the leading integer is used.`,
		Example: `  aqi compute --a 20 --b 22 --humidity 40
  aqi compute --a 20 --b 22 --humidity 40 --short 50 --long 44 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap.ObservedAtEpochSeconds = time.Now().Unix()

			result, err := domain.Evaluate(snap)
			if err != nil {
				return out.fail(cmd, err)
			}
			return out.write(cmd, result)
		},
	}

	cmd.Flags().StringVar(&snap.ChannelA, "a", "", "channel A pm2.5 cf_1 (µg/m³)")
	cmd.Flags().StringVar(&snap.ChannelB, "b", "", "channel B pm2.5 cf_1 (µg/m³)")
	cmd.Flags().StringVar(&snap.Humidity, "humidity", "", "relative humidity (%)")
	cmd.Flags().StringVar(&snap.StatShortWindow, "short", "", "short window average for the trend")
	cmd.Flags().StringVar(&snap.StatLongWindow, "long", "", "longer window average for the trend")
	cmd.Flags().StringVar(&snap.Label, "label", "", "label shown under the level")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")
	_ = cmd.MarkFlagRequired("humidity")
	out.register(cmd)

	return cmd
}
