package main

import (
	"fmt"
	"os"
	"time"

	"landing-countdown/countdown/application"
	"landing-countdown/countdown/infra"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// cli guarda as flags globais e o logger de uma execução.
type cli struct {
	verbose  bool
	target   string
	location string

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "countdown",
		Short: "Contagem regressiva da oferta",
		Long: `countdown mostra quanto falta para o fim da oferta.

Sem --target, o alvo é o último segundo do mês corrente.
Alvos aceitos: RFC3339, "2006-01-02 15:04:05", "2006-01-02" ou epoch em ms.
Um alvo inválido é tratado como vencido.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewDevelopmentConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if c.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVarP(&c.target, "target", "t", "", "Target instant (default: end of current month)")
	root.PersistentFlags().StringVar(&c.location, "location", "Local", "IANA time zone used for targets without offset")

	root.AddCommand(newRemainingCmd(c))
	root.AddCommand(newWatchCmd(c))
	return root
}

// service monta o Service com relógio real no fuso pedido.
func (c *cli) service() (application.Service, error) {
	loc, err := time.LoadLocation(c.location)
	if err != nil {
		return application.Service{}, fmt.Errorf("invalid location %q: %w", c.location, err)
	}
	return application.Service{
		Clock:    infra.NewRealClock(loc),
		Location: loc,
		Logger:   c.logger,
	}, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
