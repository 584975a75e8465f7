package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hidenkeys/hotelres/config"
	"github.com/hidenkeys/hotelres/hotel"
	"github.com/hidenkeys/hotelres/logging"
	"github.com/hidenkeys/hotelres/shell"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, in io.Reader, out io.Writer) (err error) {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()
	h, err := hotel.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open hotel", zap.Error(err))
		return fmt.Errorf("open hotel: %w", err)
	}
	defer func() {
		if cerr := h.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	sh := shell.New(h, in, out, logger)
	sh.CancelOn(os.Interrupt)
	menuRoutes(sh)
	return sh.Run(ctx)
}
