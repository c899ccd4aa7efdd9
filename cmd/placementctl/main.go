package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/AnkitS-21/campus-connect-hub/internal/app"
	"github.com/AnkitS-21/campus-connect-hub/internal/common"
	"github.com/AnkitS-21/campus-connect-hub/internal/database"
	"github.com/AnkitS-21/campus-connect-hub/internal/repository/postgres"
)

// placementctl is the operator console for the placement portal. It
// talks to the database directly, so it works even when the API is down.
//
//	placementctl listings
//	placementctl report [-listing <id>]
//	placementctl applicants -listing <id>
func main() {
	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		color.Red("DATABASE_URL is not set")
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	command := os.Args[1]

	fs := flag.NewFlagSet(command, flag.ExitOnError)
	listingFlag := fs.String("listing", "", "listing id")
	_ = fs.Parse(os.Args[2:])

	db := database.NewPostgres(database.PostgresConfig{
		DSN:             dsn,
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxIdle:     time.Minute,
		ConnMaxLifetime: 5 * time.Minute,
	})
	defer db.Close()

	profileRepo := postgres.NewProfileRepository(db)
	listingRepo := postgres.NewListingRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)

	listingService := app.NewListingService(listingRepo, profileRepo, applicationRepo)
	applicationService := app.NewApplicationService(applicationRepo, listingRepo, profileRepo)
	reportService := app.NewReportService(applicationRepo, listingRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch command {
	case "listings":
		err = showListings(ctx, listingService)
	case "report":
		err = showReport(ctx, reportService, *listingFlag)
	case "applicants":
		err = showApplicants(ctx, applicationService, *listingFlag)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: placementctl <listings|report|applicants> [-listing <id>]")
}

func showListings(ctx context.Context, listings *app.ListingService) error {
	items, err := listings.List(ctx)
	if err != nil {
		return err
	}

	color.Yellow("\nListings (%d)", len(items))
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Company", "Role", "Type", "Deadline", "Open"})

	now := time.Now().UTC()
	for _, item := range items {
		table.Append([]string{
			item.ID.String(),
			item.Name,
			item.Role,
			string(item.JobType),
			item.Deadline.UTC().Format("2006-01-02 15:04"),
			strconv.FormatBool(item.Open(now)),
		})
	}
	table.Render()
	return nil
}

func showReport(ctx context.Context, reports *app.ReportService, listingID string) error {
	var (
		report *app.Report
		err    error
	)
	if listingID == "" {
		color.Yellow("\nPortal Report")
		report, err = reports.PortalReport(ctx)
	} else {
		id, parseErr := common.ParseUUID(listingID)
		if parseErr != nil {
			return parseErr
		}
		color.Yellow("\nListing Report (%s)", listingID)
		report, err = reports.ListingReport(ctx, id)
	}
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Total", "Applied", "Shortlisted", "Rejected", "Selected", "Conversion"})
	table.Append([]string{
		strconv.Itoa(report.Total),
		strconv.Itoa(report.Applied),
		strconv.Itoa(report.Shortlisted),
		strconv.Itoa(report.Rejected),
		strconv.Itoa(report.Selected),
		fmt.Sprintf("%.1f%%", report.ConversionRate*100),
	})
	table.Render()
	return nil
}

func showApplicants(ctx context.Context, applications *app.ApplicationService, listingID string) error {
	if listingID == "" {
		return fmt.Errorf("applicants requires -listing <id>")
	}
	id, err := common.ParseUUID(listingID)
	if err != nil {
		return err
	}
	items, err := applications.ListApplicants(ctx, id)
	if err != nil {
		return err
	}

	color.Yellow("\nApplicants (%d)", len(items))
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "Roll No", "Branch", "CPI", "Status", "Applied At"})

	for _, item := range items {
		cpi := ""
		if item.Profile.CPI != nil {
			cpi = strconv.FormatFloat(*item.Profile.CPI, 'f', 2, 64)
		}
		table.Append([]string{
			item.Profile.FullName,
			item.Profile.RollNo,
			item.Profile.Branch,
			cpi,
			string(item.Status),
			item.AppliedAt.UTC().Format("2006-01-02 15:04"),
		})
	}
	table.Render()
	return nil
}
