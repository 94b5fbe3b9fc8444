package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"fininclusion/internal/app"
	"fininclusion/internal/artifact"
	"fininclusion/internal/config"
	"fininclusion/internal/db"
	"fininclusion/internal/encoder"
	"fininclusion/internal/inference"
	"fininclusion/internal/model"
	"fininclusion/internal/service"
)

func newCheckCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load every artifact and verify the form can be encoded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := app.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			out := cmd.OutOrStdout()
			names := make([]string, 0, len(rt.Artifacts.Versions))
			for name := range rt.Artifacts.Versions {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "%-40s %s\n", name, rt.Artifacts.Versions[name])
			}
			fmt.Fprintf(out, "model type %s, version %s\n", rt.Artifacts.Model.Type(), rt.Artifacts.ModelVersion)
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}

func newPredictCmd(cfg *config.Config) *cobra.Command {
	var in inference.Input

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict bank account ownership for one respondent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := app.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			predictor := service.NewPredictor(rt.Pipeline, rt.Form, nil, rt.Artifacts.ModelVersion)
			res, err := predictor.Predict(in)
			if err != nil {
				return fmt.Errorf("%s: %w", inference.KindOf(err), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Prediction: The individual %s\n", res.Text)
			fmt.Fprintf(out, "Confidence: %s\n", res.ConfidencePercent())
			return nil
		},
	}

	defaults := config.DefaultFormConfig()
	intDefault := func(name string) int {
		if f := defaults.Field(name); f != nil {
			return f.Default
		}
		return 0
	}

	f := cmd.Flags()
	f.StringVar(&in.Country, "country", "", "country of residence")
	f.IntVar(&in.Year, "year", intDefault("year"), "survey year")
	f.StringVar(&in.LocationType, "location-type", "", "Rural or Urban")
	f.StringVar(&in.CellphoneAccess, "cellphone-access", "", "Yes or No")
	f.IntVar(&in.HouseholdSize, "household-size", intDefault("household_size"), "number of people in the household")
	f.IntVar(&in.AgeOfRespondent, "age", intDefault("age_of_respondent"), "age of the respondent")
	f.StringVar(&in.GenderOfRespondent, "gender", "", "Male or Female")
	f.StringVar(&in.RelationshipWithHead, "relationship", "", "relationship with the head of household")
	f.StringVar(&in.EducationLevel, "education", "", "highest level of education")
	f.StringVar(&in.JobType, "job", "", "type of job")
	f.StringVar(&in.MaritalStatus, "marital-status", "", "marital status")
	return cmd
}

func newPublishCmd(cfg *config.Config) *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "publish <dir>",
		Short: "Validate the artifact files in dir and upload them to Postgres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := readArtifactDir(args[0])
			if err != nil {
				return err
			}

			database, err := app.OpenDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			out := cmd.OutOrStdout()
			for _, f := range files {
				v := version
				if v == "" {
					v = db.Checksum(f.data)[:12]
				}
				if err := database.PutArtifact(cmd.Context(), f.name, v, f.data); err != nil {
					return fmt.Errorf("failed to publish %s: %w", f.name, err)
				}
				fmt.Fprintf(out, "published %s (%s)\n", f.name, v)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "version to record, defaults to a checksum prefix")
	return cmd
}

type artifactFile struct {
	name string
	data []byte
}

// readArtifactDir reads and parses every artifact in dir so nothing invalid
// reaches the store.
func readArtifactDir(dir string) ([]artifactFile, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no artifacts found in %s", dir)
	}
	sort.Strings(paths)

	files := make([]artifactFile, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		name := filepath.Base(path)
		if strings.HasSuffix(name, "_encoder.json") {
			_, err = encoder.Parse(data)
		} else {
			_, err = model.Parse(data)
		}
		if err != nil {
			return nil, &artifact.LoadError{Artifact: name, Err: err}
		}
		files = append(files, artifactFile{name: name, data: data})
	}
	return files, nil
}
