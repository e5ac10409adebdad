package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/hexlight/internal/config"
	"github.com/dshills/hexlight/internal/pattern"
)

func (c *cli) notationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notations",
		Short: "List color notations in match precedence order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for i, n := range pattern.Precedence {
				state := "off"
				if enabled(c.cfg, n) {
					state = "on"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %-10s %s\n", i+1, n, state)
			}
			return nil
		},
	}
}

func enabled(cfg config.Config, n pattern.Notation) bool {
	switch n {
	case pattern.Hex:
		return cfg.EnableHex
	case pattern.ShortHex:
		return cfg.EnableShortHex
	case pattern.RGB:
		return cfg.EnableRGB
	case pattern.HSL:
		return cfg.EnableHSL
	case pattern.VarUsage:
		return cfg.EnableVarUsage
	case pattern.Named:
		return cfg.EnableNamedColors
	case pattern.Tailwind:
		return cfg.EnableTailwind
	case pattern.Custom:
		return len(cfg.CustomColors) > 0
	default:
		return false
	}
}
