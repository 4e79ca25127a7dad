// Command process runs a single order through the workflow and prints the result.
//
//	process --policy refactored --file order.json
//	cat order.json | process
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/order-processor/pkg/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("process", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	policyName := flags.String("policy", "legacy", "order policy: legacy or refactored")
	file := flags.StringP("file", "f", "", "order JSON file (default stdin)")
	logLevel := flags.String("log-level", "warn", "log level: debug, info, warn or error")

	if err := flags.Parse(args); err != nil {
		return err
	}

	policy, err := service.PolicyByName(*policyName)
	if err != nil {
		return err
	}

	in := stdin
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			return fmt.Errorf("open order file: %w", err)
		}
		defer f.Close()
		in = f
	}

	var req models.OrderRequest
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return fmt.Errorf("decode order: %w", err)
	}

	svc := service.NewOrderService(policy, service.Dependencies{
		Logger: logger.NewWithWriter(stderr, *logLevel),
	})

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")

	confirmation, err := svc.ProcessOrder(context.Background(), req)
	if err != nil {
		if failure, ok := models.AsFailure(err); ok {
			return enc.Encode(failure.Error())
		}
		return err
	}
	return enc.Encode(confirmation)
}
