package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"emergencyrelay/backend/internal/models"
	"emergencyrelay/backend/internal/storage"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

// listReports prints reports oldest first. An empty status prints all.
func listReports(ctx context.Context, store storage.Store, status models.ReportStatus, w io.Writer) error {
	reports, err := store.LoadAllReports(ctx)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}
	if status != "" {
		reports = lo.Filter(reports, func(r models.Report, _ int) bool { return r.Status == status })
	}

	table := newTable(w, []string{"ID", "Type", "Status", "Severity", "Reporter", "Submitted", "Address"})
	for _, r := range reports {
		table.Append([]string{
			r.ID, r.Field("type"), string(r.Status), r.Field("severity"), r.Field("userName"),
			r.Timestamp.Local().Format(time.DateTime), r.Field("address"),
		})
	}
	table.Render()
	_, err = fmt.Fprintf(w, "%d report(s)\n", len(reports))
	return err
}

func listStations(ctx context.Context, store storage.Store, w io.Writer) error {
	stations, err := store.LoadAllStations(ctx)
	if err != nil {
		return fmt.Errorf("load stations: %w", err)
	}

	table := newTable(w, []string{"ID", "Name", "Type", "Contact", "Services", "Address"})
	for _, s := range stations {
		table.Append([]string{s.ID, s.Name, s.Type, s.ContactNumber, strings.Join(s.Services, ", "), s.Address})
	}
	table.Render()
	_, err = fmt.Fprintf(w, "%d station(s)\n", len(stations))
	return err
}
