package main

import (
	"github.com/smallbiznis/supportly/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// supportly serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chatbot HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		application := fx.New(app.API())
		if err := application.Err(); err != nil {
			return err
		}
		application.Run()
		return nil
	},
}
