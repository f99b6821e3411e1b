package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/fredkit/fred"
	"github.com/derickschaefer/fredkit/internal/model"
	"github.com/derickschaefer/fredkit/internal/render"
)

var datafileCmd = &cobra.Command{
	Use:   "datafile <SERIES_ID>",
	Short: "Write a series as a FRED-style text data file",
	Long: `Fetch a series, its release, the release's source and every observation,
then write them in the layout of the text files FRED offers for download:
a header block followed by DATE/VALUE rows.`,
	Example: `  fredkit datafile GNPCA
  fredkit datafile UNRATE --out UNRATE.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		id := normaliseIDs(args)[0]
		deps, err := buildAPIDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		ctx := cmd.Context()
		first := func(req fred.APIRequest, what string) (fred.Entity, error) {
			resp, err := deps.API.Fetch(ctx, req)
			if err != nil {
				return fred.Entity{}, fmt.Errorf("%s of %s: %w", what, id, err)
			}
			if len(resp.Entities) == 0 {
				return fred.Entity{}, fmt.Errorf("%s of %s: empty response", what, id)
			}
			return resp.Entities[0], nil
		}

		series, err := first(fred.Series(id), "series")
		if err != nil {
			return err
		}
		release, err := first(fred.SeriesRelease(id), "release")
		if err != nil {
			return err
		}
		source, err := first(fred.ReleaseSources(release.Attribute("id")), "source")
		if err != nil {
			return err
		}
		obs, err := deps.API.Fetch(ctx, fred.SeriesObservations(id))
		if err != nil {
			return fmt.Errorf("observations of %s: %w", id, err)
		}

		df := &model.DataFile{
			Series:       series,
			Release:      release,
			Source:       source,
			Observations: model.Observations(obs.Entities),
		}
		w, closeFn, err := outputWriter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer closeOutput(closeFn, &err)
		return render.RenderDataFile(w, df)
	},
}

func init() {
	rootCmd.AddCommand(datafileCmd)
}
