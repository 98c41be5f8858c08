package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/espinet/byebug/pkg/breakpoint"
	"github.com/espinet/byebug/pkg/command"
	"github.com/espinet/byebug/pkg/iface"
	"github.com/espinet/byebug/pkg/logger"
	"github.com/espinet/byebug/pkg/processor"
	"github.com/espinet/byebug/pkg/settings"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:           "byebug",
		Short:         "Interactive debugger command processor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newConsoleCommand(),
		newListenCommand(),
		newVersionCommand(),
	)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newConsoleCommand() *cobra.Command {
	var debugLog bool
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Run a control session on the local terminal",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if debugLog {
				logger.SetLevel(logger.DEBUG)
			}
			opts, err := settings.FromEnv()
			if err != nil {
				return err
			}
			in, err := iface.NewConsoleInterface()
			if err != nil {
				return err
			}
			ctl := processor.NewControlCommandProcessor(command.DefaultRegistry(), opts, breakpoint.NewSet(), in)
			if err := ctl.ProcessCommands(); err != nil && !errors.Is(err, command.ErrTerminate) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&debugLog, "debug", "d", false, "Enable debug logging")
	return cmd
}

func newListenCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Serve control sessions to editor frontends over websocket",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			opts, err := settings.FromEnv()
			if err != nil {
				return err
			}
			upgrader := websocket.Upgrader{
				ReadBufferSize:  1024,
				WriteBufferSize: 1024,
			}
			mux := http.NewServeMux()
			mux.HandleFunc("/session", func(w http.ResponseWriter, r *http.Request) {
				conn, err := upgrader.Upgrade(w, r, nil)
				if err != nil {
					logger.WarnCF("control", "websocket upgrade failed", map[string]any{"error": err.Error()})
					return
				}
				remote := iface.NewRemoteInterface(conn)
				ctl := processor.NewControlCommandProcessor(command.DefaultRegistry(), opts, breakpoint.NewSet(), remote)
				if err := ctl.ProcessCommands(); err != nil && !errors.Is(err, command.ErrTerminate) {
					logger.WarnCF("control", "session ended with error", map[string]any{"error": err.Error()})
				}
			})
			logger.InfoCF("control", "listening for frontends", map[string]any{"addr": addr})
			return http.ListenAndServe(addr, mux)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8642", "Listen address for frontend connections")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version)
		},
	}
}
