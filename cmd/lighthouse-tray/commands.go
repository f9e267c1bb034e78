package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/melih/lighthouse-tray/internal/core/dispatcher"
	"github.com/melih/lighthouse-tray/internal/core/poller"
)

func listCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print one snapshot of all containers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			rt, err := newRuntime(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			p := poller.New(rt, poller.WithQueryTimeout(cfg.QueryTimeout))
			containers, err := p.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			if len(containers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No containers")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), containerTable(containers))
			return nil
		},
	}
}

func toggleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <container>",
		Short: "Start a stopped container or stop a running one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			rt, err := newRuntime(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			d := dispatcher.New(rt, nil, dispatcher.WithActionTimeout(cfg.ActionTimeout))
			res := d.Do(context.WithoutCancel(cmd.Context()), args[0])
			if !res.Succeeded() {
				fmt.Fprintln(cmd.ErrOrStderr(), errorMsg("%s", res.Message))
				return res.Err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successMsg("%s", res.Message))
			return nil
		},
	}
}
