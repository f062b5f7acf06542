// cmd/riordino/main.go
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/mcampagna/riordino/internal/config"
	"github.com/mcampagna/riordino/internal/domain"
	"github.com/mcampagna/riordino/internal/report"
	"github.com/mcampagna/riordino/internal/service"
	"github.com/mcampagna/riordino/internal/vendors"
	"github.com/mcampagna/riordino/pkg/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		logger.Log.Warn().Err(err).Msg("could not load .env file")
	}

	app := &cli.App{
		Name:  "riordino",
		Usage: "Compute purchase-order requirements from SAP B1 sales exports",
		Commands: []*cli.Command{
			{
				Name:      "compute",
				Usage:     "Run the reorder computation over one or more exports",
				ArgsUsage: "<export.xlsx> [export.xlsx ...]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "lead-time",
						Usage:   "Supplier lead time in days",
						Value:   10,
						EnvVars: []string{"REORDER_LEAD_TIME_DAYS"},
					},
					&cli.IntFlag{
						Name:    "coverage",
						Usage:   "Desired coverage days beyond the lead time",
						Value:   45,
						EnvVars: []string{"REORDER_COVERAGE_DAYS"},
					},
					&cli.IntFlag{
						Name:    "safety",
						Usage:   "Safety stock in days",
						Value:   15,
						EnvVars: []string{"REORDER_SAFETY_DAYS"},
					},
					&cli.StringFlag{
						Name:    "vendors",
						Usage:   "Vendor reference CSV (codes, MOQ, lead time overrides)",
						EnvVars: []string{"REORDER_VENDORS_FILE"},
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Row order inside vendor sheets: alphabetical or relevance",
						Value: string(report.SortAlphabetical),
					},
				},
				Action: runCompute,
			},
			{
				Name:      "vendors-template",
				Usage:     "Generate the vendor reference CSV skeleton from an export",
				ArgsUsage: "<export.xlsx>",
				Action:    runVendorsTemplate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("command failed")
	}
}

func runCompute(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("no export files given", 1)
	}

	cfg := config.Load()
	svc := service.NewReorderService(cfg)

	params := domain.ReorderParameters{
		LeadTimeDays: c.Int("lead-time"),
		CoverageDays: c.Int("coverage"),
		SafetyDays:   c.Int("safety"),
	}

	var vendorRef map[string]domain.VendorInfo
	if path := c.String("vendors"); path != "" {
		ref, err := vendors.LoadFile(path)
		if err != nil {
			return err
		}
		vendorRef = ref
	}

	mode := report.SortAlphabetical
	if c.String("sort") == string(report.SortRelevance) {
		mode = report.SortRelevance
	}

	files := make([]*domain.UploadedFile, 0, c.NArg())
	for _, path := range c.Args().Slice() {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("cannot read export %s: %w", path, err)
		}
		files = append(files, &domain.UploadedFile{
			Filename: info.Name(),
			Path:     path,
			Size:     info.Size(),
		})
	}

	summaries, err := svc.ProcessFiles(c.Context, files, params, vendorRef, mode)
	if err != nil {
		return err
	}

	for _, summary := range summaries {
		fmt.Printf("%s: %d articoli, %d da ordinare (%d pezzi), %d fornitori\n",
			summary.Filename, summary.TotalItems, summary.ItemsToOrder, summary.TotalQty, summary.Vendors)
		fmt.Printf("  analisi:   %s\n", summary.AnalysisPath)
		fmt.Printf("  fornitori: %s\n", summary.ByVendorPath)
	}
	return nil
}

func runVendorsTemplate(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("exactly one export file required", 1)
	}

	cfg := config.Load()
	svc := service.NewReorderService(cfg)

	path := c.Args().First()
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read export %s: %w", path, err)
	}

	out, err := svc.WriteVendorTemplate(&domain.UploadedFile{
		Filename: info.Name(),
		Path:     path,
		Size:     info.Size(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("template fornitori: %s\n", out)
	return nil
}
