package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/premium/api/predict"
	"github.com/kilianp07/premium/app"
)

var inputPath string

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict one request read from a file or stdin",
	Args:  cobra.NoArgs,
	RunE:  runPredict,
}

func init() {
	predictCmd.Flags().StringVarP(&inputPath, "input", "i", "", "request JSON file (default stdin)")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, _, err := app.LoadPipeline(cfg.Pipeline)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if inputPath != "" && inputPath != "-" {
		f, err := os.Open(inputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	y, err := predict.NewHandler(p, nil, nil).Predict(cmd.Context(), in)
	enc := json.NewEncoder(cmd.OutOrStdout())
	if err != nil {
		_ = enc.Encode(predict.ErrorResponse{Error: err.Error()})
		return err
	}
	return enc.Encode(predict.Response{Prediction: y})
}
