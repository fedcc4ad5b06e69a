package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/domain/services"
	"github.com/Urbanbaseprops/property-manager/internal/error/apperror"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/config"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
	Logger "github.com/Urbanbaseprops/property-manager/pkg/logger"
)

// SeedFile is the layout of a seed document. Entries are loose maps so that they go
// through the same normalisation as API input.
type SeedFile struct {
	Properties   []map[string]interface{} `yaml:"properties"`
	Contractors  []models.Contractor      `yaml:"contractors"`
	Repairs      []map[string]interface{} `yaml:"repairs"`
	Certificates []map[string]interface{} `yaml:"certificates"`
	Tasks        []map[string]interface{} `yaml:"tasks"`
}

// SeedResult counts what was written
type SeedResult struct {
	Properties   int
	Skipped      int
	Contractors  int
	Repairs      int
	Certificates int
	Tasks        int
}

// NewSeedCommand creates the seed command
func NewSeedCommand(opts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load properties, contractors, repairs, certificates and tasks from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := readSeedFile(file)
			if err != nil {
				return err
			}

			pool, store, err := openDatabase(opts.Config)
			if err != nil {
				return err
			}
			defer pool.Close()

			result, err := applySeed(cmd.Context(), store, opts.Config, seed, time.Now())
			if err != nil {
				return err
			}
			printSeedResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "seed file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readSeedFile(path string) (*SeedFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed SeedFile
	if err := yaml.Unmarshal(b, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &seed, nil
}

// applySeed writes every entry through the services, stopping at the first failure.
// Properties without a name are skipped the same way the API skips them.
func applySeed(ctx context.Context, store docstore.Store, cfg *config.Config, seed *SeedFile, now time.Time) (*SeedResult, error) {
	v := apperror.NewValidator()
	result := &SeedResult{}

	properties := services.NewPropertyService(store, cfg, v)
	for i, raw := range seed.Properties {
		if _, err := properties.CreateProperty(ctx, normalizeSeedValues(raw)); err != nil {
			if errors.Is(err, services.ErrValidationSkipped) {
				Logger.Warning("seed: property %d skipped: %v", i, err)
				result.Skipped++
				continue
			}
			return result, fmt.Errorf("property %d: %w", i, err)
		}
		result.Properties++
	}

	contractors := services.NewContractorService(store, v)
	for i, c := range seed.Contractors {
		if _, err := contractors.SaveContractor(ctx, c); err != nil {
			return result, fmt.Errorf("contractor %d: %w", i, err)
		}
		result.Contractors++
	}

	repairs := services.NewRepairService(store, cfg, v)
	for i, raw := range seed.Repairs {
		var r models.Repair
		if err := decodeSeedEntry(raw, &r); err != nil {
			return result, fmt.Errorf("repair %d: %w", i, err)
		}
		if _, err := repairs.CreateRepair(ctx, r); err != nil {
			return result, fmt.Errorf("repair %d: %w", i, err)
		}
		result.Repairs++
	}

	certificates := services.NewCertificateService(store, cfg, v)
	for i, raw := range seed.Certificates {
		var c models.Certificate
		if err := decodeSeedEntry(raw, &c); err != nil {
			return result, fmt.Errorf("certificate %d: %w", i, err)
		}
		if _, err := certificates.CreateCertificate(ctx, c); err != nil {
			return result, fmt.Errorf("certificate %d: %w", i, err)
		}
		result.Certificates++
	}

	tasks := services.NewTaskService(store, v)
	for i, raw := range seed.Tasks {
		var t models.Task
		if err := decodeSeedEntry(raw, &t); err != nil {
			return result, fmt.Errorf("task %d: %w", i, err)
		}
		if _, err := tasks.CreateTask(ctx, t, now); err != nil {
			return result, fmt.Errorf("task %d: %w", i, err)
		}
		result.Tasks++
	}

	return result, nil
}

// decodeSeedEntry converts a YAML map into a model using its JSON decoding rules
func decodeSeedEntry(raw map[string]interface{}, dest interface{}) error {
	b, err := json.Marshal(normalizeSeedValues(raw))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dest)
}

// normalizeSeedValues turns YAML timestamps into plain dates
func normalizeSeedValues(raw map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(raw))
	for k, val := range raw {
		if t, ok := val.(time.Time); ok {
			val = t.Format("2006-01-02")
		}
		out[k] = val
	}
	return out
}

func printSeedResult(w io.Writer, r *SeedResult) {
	fmt.Fprintf(w, "properties: %d (skipped %d)\n", r.Properties, r.Skipped)
	fmt.Fprintf(w, "contractors: %d\n", r.Contractors)
	fmt.Fprintf(w, "repairs: %d\n", r.Repairs)
	fmt.Fprintf(w, "certificates: %d\n", r.Certificates)
	fmt.Fprintf(w, "tasks: %d\n", r.Tasks)
}
