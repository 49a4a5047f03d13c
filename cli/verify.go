package cli

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/theMomax/openmeteogram/config"
	"github.com/theMomax/openmeteogram/models/verification"
)

// Config paths
const (
	PathVerifyFile      = "verify.file"
	PathVerifyLatitude  = "verify.lat"
	PathVerifyLongitude = "verify.lon"
	PathVerifyJSON      = "verify.json"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Compare a meteogram with the WRF output",
	Long: `verify compares the meteogram with the WRF output at the grid point nearest to
the given coordinates and prints the mean absolute error of every variable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return verify(cmd.OutOrStdout())
	},
}

func init() {
	flags := verifyCmd.Flags()

	flags.String(PathVerifyFile, "/home/sig07/pronosticos_numericos/data/meteogram/wrf/acapulco.json", "meteogram to verify")
	config.Viper.BindPFlag(PathVerifyFile, flags.Lookup(PathVerifyFile))

	flags.Float64(PathVerifyLatitude, 16.863, "latitude of the meteogram's location")
	config.Viper.BindPFlag(PathVerifyLatitude, flags.Lookup(PathVerifyLatitude))

	flags.Float64(PathVerifyLongitude, -99.890, "longitude of the meteogram's location")
	config.Viper.BindPFlag(PathVerifyLongitude, flags.Lookup(PathVerifyLongitude))

	flags.Bool(PathVerifyJSON, false, "print the report as JSON")
	config.Viper.BindPFlag(PathVerifyJSON, flags.Lookup(PathVerifyJSON))

	config.RootCtx.AddCommand(verifyCmd)
}

func verify(w io.Writer) error {
	cfg := verification.ForCity(
		config.Viper.GetString(PathVerifyFile),
		config.Viper.GetFloat64(PathVerifyLatitude),
		config.Viper.GetFloat64(PathVerifyLongitude),
	)
	report, err := verification.Run(cfg)
	if err != nil {
		return err
	}

	if config.Viper.GetBool(PathVerifyJSON) {
		b, err := report.MarshalJSON()
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	}
	_, err = report.WriteTo(w)
	return err
}
