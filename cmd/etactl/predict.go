package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"deliveryeta/internal/config"
	"deliveryeta/internal/http/handlers"
	"deliveryeta/internal/modules/artifact"
	"deliveryeta/internal/modules/estimator"
	"deliveryeta/internal/modules/pricing"
)

var errPredictFailed = errors.New("prediction failed")

var predictCmd = &cobra.Command{
	Use:   "predict [json]",
	Short: "Estimate delivery time and fee for a JSON request (argument or stdin)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStores(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer st.close()

		engine := newEngine(cfg, st.models, logger)
		return predict(cmd.Context(), engine, args, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func newEngine(c config.Config, models artifact.Store, log *zap.Logger) *estimator.Engine {
	return estimator.NewEngine(c.Tariff, estimator.NewLoader(models), pricing.NewService(c.Tariff), log)
}

type failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// predict decodes one request from args[0] or in and writes the HTTP
// response shape to out. Any failure is written as {success:false} too.
func predict(ctx context.Context, engine handlers.Estimator, args []string, in io.Reader, out io.Writer) error {
	enc := json.NewEncoder(out)

	var raw []byte
	source := "input"
	if len(args) == 1 {
		raw = []byte(args[0])
		source = "argument"
	} else {
		b, err := io.ReadAll(in)
		if err != nil {
			_ = enc.Encode(failure{Error: err.Error()})
			return errPredictFailed
		}
		raw = b
	}

	var req estimator.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		_ = enc.Encode(failure{Error: "Invalid JSON " + source})
		return errPredictFailed
	}
	est, err := engine.Estimate(ctx, req)
	if err != nil {
		_ = enc.Encode(failure{Error: err.Error()})
		return errPredictFailed
	}
	return enc.Encode(handlers.NewEstimateResp(est))
}
