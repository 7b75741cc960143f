// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/momeni/catways/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/repo"
	"github.com/spf13/cobra"
)

var catwaysPath, reservationsPath string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace all catways and reservations by the given ones",
	Long: `Replace all catways and reservations by the records which are
read from the given JSON files. Each file must contain an array of
objects. Catways have catwayNumber, catwayType (short or long), and
catwayState fields. Reservations have catwayNumber, clientName,
boatName, startDate, and endDate fields. Dates are accepted in the
RFC 3339 or YYYY-MM-DD formats, like the REST API requests.

All records are checked like the REST API requests, so imported
reservations may not overlap. Existing catways and reservations are
deleted and the given records are inserted in one transaction, hence,
nothing is changed if any record is rejected.`,
	RunE: importData,
	Args: cobra.NoArgs,
}

func importData(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	var catways []model.Catway
	if err := readJSON(catwaysPath, &catways); err != nil {
		return err
	}
	reservations, err := readReservations(reservationsPath)
	if err != nil {
		return err
	}
	c, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	repos := c.Repos()
	rs, err := c.NewReservationsUseCase(p, repos)
	if err != nil {
		return fmt.Errorf("creating reservations use case: %w", err)
	}
	im, err := c.NewImportUseCase(p, repos, rs)
	if err != nil {
		return fmt.Errorf("creating import use case: %w", err)
	}
	if _, err = im.Import(ctx, catways, reservations); err != nil {
		return fmt.Errorf("importing data: %w", err)
	}
	return nil
}

// importedReservation is a reservation record of an import file.
// Its dates are decoded like the REST API request dates.
type importedReservation struct {
	CatwayNumber int          `json:"catwayNumber"`
	ClientName   string       `json:"clientName"`
	BoatName     string       `json:"boatName"`
	StartDate    serdser.Date `json:"startDate"`
	EndDate      serdser.Date `json:"endDate"`
}

// readReservations decodes the reservations of the path file.
// An empty path gives no reservations.
func readReservations(path string) ([]model.Reservation, error) {
	var records []importedReservation
	if err := readJSON(path, &records); err != nil {
		return nil, err
	}
	list := make([]model.Reservation, 0, len(records))
	for _, r := range records {
		list = append(list, model.Reservation{
			CatwayNumber: r.CatwayNumber,
			ClientName:   r.ClientName,
			BoatName:     r.BoatName,
			StartDate:    r.StartDate.Time,
			EndDate:      r.EndDate.Time,
		})
	}
	return list, nil
}

// readJSON decodes the JSON contents of the path file into v.
// An empty path leaves v untouched.
func readJSON(path string, v any) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %q: %w", path, err)
	}
	if err = json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %q: %w", path, err)
	}
	return nil
}

func init() {
	importCmd.Flags().StringVar(
		&catwaysPath, "catways", "", "catways JSON file path",
	)
	importCmd.Flags().StringVar(
		&reservationsPath, "reservations", "", "reservations JSON file path",
	)
	_ = importCmd.MarkFlagRequired("catways")
	dbCmd.AddCommand(importCmd)
}
