package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/hexlight/internal/decoration"
	"github.com/dshills/hexlight/internal/engine"
	"github.com/dshills/hexlight/internal/event"
	"github.com/dshills/hexlight/internal/luaapi"
	"github.com/dshills/hexlight/internal/workspace"
)

func (c *cli) luaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lua SCRIPT [FILE...]",
		Short: "Run a Lua script against opened files",
		Long: `Open each FILE, then run SCRIPT with the hexlight module loaded.
The script sees the opened document ids in the global table arg and can
call hexlight.refresh, hexlight.clear, hexlight.command and friends.
A summary of decorations per document is printed afterwards.

Example script:
  for _, doc in ipairs(arg) do
    hexlight.refresh(doc, true)
  end`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bus := event.NewBus()
			ws := workspace.New(bus)
			ns := decoration.NewStore()
			ctrl := engine.New(c.cfg, ws, ns)
			defer ctrl.Close()
			ctrl.Subscribe(bus)

			ids := make([]string, 0, len(args)-1)
			for _, path := range args[1:] {
				id, err := ws.Open(ctx, path)
				if err != nil {
					fmt.Fprintf(c.errOut, "hexlight: %v\n", err)
					continue
				}
				ids = append(ids, id)
			}

			if err := luaapi.Run(ctx, ctrl, args[0], ids...); err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d decorations\n", id, ns.Count(id))
			}
			return nil
		},
	}
}
