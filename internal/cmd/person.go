package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clambin/rachio-tools/internal/export"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultPersonFile = "./out/rachio-person.{timestamp}.json"

var savePersonCmd = cobra.Command{
	Use:   "save-person",
	Short: "Save your account, with all devices and their zones, to a file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		outFile, _ := cmd.Flags().GetString("out-file")
		return newApp(viper.GetViper(), slog.Default()).savePerson(cmd.Context(), outFile)
	},
}

func init() {
	savePersonCmd.Flags().String("out-file", "", "Output file. Use .yaml for YAML output. Defaults to "+defaultPersonFile)
}

func (a *app) savePerson(ctx context.Context, outFile string) error {
	c, err := a.client()
	if err != nil {
		return err
	}
	return a.run(ctx, nil, func(ctx context.Context) error {
		person, err := c.GetPerson(ctx)
		if err != nil {
			return fmt.Errorf("person: %w", err)
		}
		path, err := export.WriteDocument(export.ExpandPath(outFile, defaultPersonFile, a.now()), person)
		if err != nil {
			return fmt.Errorf("save person: %w", err)
		}
		a.logger.Info("person saved", "path", path, "devices", len(person.Devices))
		return nil
	})
}
