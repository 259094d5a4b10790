package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/camiloruiz/plandes/internal/cli/formatter"
	"github.com/camiloruiz/plandes/internal/domain"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage shared catalogs",
	}

	cmd.AddCommand(
		newCatalogKindCmd(app, "municipio", "municipalities", domain.CatalogMunicipality),
		newCatalogKindCmd(app, "responsable", "responsible parties", domain.CatalogResponsible),
		newCatalogKindCmd(app, "unidad", "measurement units", domain.CatalogUnit),
	)

	return cmd
}

func newCatalogKindCmd(app *App, use, plural string, kind domain.CatalogKind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Manage the catalog of %s", plural),
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: fmt.Sprintf("Add one of the %s", plural),
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, note, err := app.Catalog.Add(context.Background(), kind, strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Println(formatter.NoteIndicator(note))
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: fmt.Sprintf("List the %s", plural),
			RunE: func(cmd *cobra.Command, args []string) error {
				entries, err := app.Catalog.List(context.Background(), kind)
				if err != nil {
					return err
				}
				if kind == domain.CatalogMunicipality {
					fmt.Println(formatter.Dim(domain.WholeTerritory + " (siempre disponible)"))
				}
				for _, e := range entries {
					fmt.Println(e.Name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <name>",
			Short: fmt.Sprintf("Remove one of the %s", plural),
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				note, err := app.Catalog.Remove(context.Background(), kind, strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Println(formatter.NoteIndicator(note))
				return nil
			},
		},
	)

	return cmd
}
