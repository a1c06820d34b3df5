package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"oncampus/internal/collection"
	"oncampus/internal/models"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RemoveResult is printed by the remove command.
type RemoveResult struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}

// StatusEntry is one line of the status command.
type StatusEntry struct {
	collection.InitResult
	Error string `json:"error,omitempty"`
}

func (a *App) json() bool { return OutputFormat(a.format) == FormatJSON }

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (a *App) writeClubs(clubs []models.Club) error {
	if a.json() {
		return writeJSON(a.Out, clubs)
	}
	if len(clubs) == 0 {
		fmt.Fprintln(a.Out, "No clubs.")
		return nil
	}
	tw := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tIMAGE")
	for _, c := range clubs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Category, c.ImageID)
	}
	return tw.Flush()
}

func (a *App) writeEvents(events []models.CampusEvent) error {
	if a.json() {
		return writeJSON(a.Out, events)
	}
	if len(events) == 0 {
		fmt.Fprintln(a.Out, "No events.")
		return nil
	}
	tw := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDATE\tLOCATION")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Title, e.Date, e.Location)
	}
	return tw.Flush()
}

func (a *App) writeBenefits(benefits []models.Benefit) error {
	if a.json() {
		return writeJSON(a.Out, benefits)
	}
	if len(benefits) == 0 {
		fmt.Fprintln(a.Out, "No benefits.")
		return nil
	}
	tw := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPROVIDER\tREDEEM")
	for _, b := range benefits {
		redeem := b.RedirectURL
		if redeem == "" {
			redeem = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.ID, b.Title, b.Provider, redeem)
	}
	return tw.Flush()
}

func (a *App) writeRemoval(res RemoveResult) error {
	if a.json() {
		return writeJSON(a.Out, res)
	}
	if res.Removed {
		fmt.Fprintf(a.Out, "Removed %s from %s.\n", res.ID, res.Kind)
	} else {
		fmt.Fprintf(a.Out, "No entry %s in %s, nothing removed.\n", res.ID, res.Kind)
	}
	return nil
}

func (a *App) writeStatus(results []collection.InitResult) error {
	entries := make([]StatusEntry, 0, len(results))
	for _, r := range results {
		entry := StatusEntry{InitResult: r}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		entries = append(entries, entry)
	}

	if a.json() {
		return writeJSON(a.Out, entries)
	}

	tw := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tOUTCOME\tITEMS\tVERSION\tSTORED")
	for _, e := range entries {
		stored := e.StoredFingerprint
		if stored == "" {
			stored = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", e.Kind, e.Outcome, e.Count, e.Fingerprint, stored)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, e := range entries {
		if e.Error != "" {
			fmt.Fprintf(a.Out, "%s: %s\n", e.Kind, e.Error)
		}
	}
	return nil
}
