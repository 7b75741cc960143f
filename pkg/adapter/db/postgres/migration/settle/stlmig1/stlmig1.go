// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package stlmig1 provides the Settler type for database schema major
// version 1. It initializes a database with the major version 1
// tables, having development or production suitable data.
package stlmig1

import (
	"context"
	"fmt"

	"github.com/momeni/catways/pkg/core/repo"
)

// These constants indicate the major, minor, and patch components of
// the database schema version which is created by this package.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Settler struct creates the tables of the catweb1 schema.
// Each instance of Settler wraps and uses a single transaction of the
// destination database, but the caller is responsible to commit that
// transaction in order to finalize the initialization.
type Settler struct {
	tx repo.Tx // destination database transaction
}

// New creates a new Settler instance, wrapping the given `tx` database
// transaction. The settler object expects the database schema to exist
// (as the first entry of the search_path) and only tries to create
// relevant tables in that schema.
func New(tx repo.Tx) *Settler {
	return &Settler{
		tx: tx,
	}
}

// The reservations_no_overlap exclusion constraint keeps the closed
// date ranges of each catway disjoint. It needs the btree_gist
// extension for the equality operator of integers in a GiST index.
const schemaDDL = `
CREATE TABLE catways (
	id uuid PRIMARY KEY,
	number integer NOT NULL
		CONSTRAINT catways_number_key UNIQUE
		CONSTRAINT catways_number_check CHECK (number > 0),
	type text NOT NULL
		CONSTRAINT catways_type_check CHECK (type IN ('short', 'long')),
	state text NOT NULL
		CONSTRAINT catways_state_check CHECK (state <> '')
);

CREATE TABLE reservations (
	id uuid PRIMARY KEY,
	catway_number integer NOT NULL,
	client_name text NOT NULL CHECK (client_name <> ''),
	boat_name text NOT NULL CHECK (boat_name <> ''),
	start_date timestamptz NOT NULL,
	end_date timestamptz NOT NULL,
	CONSTRAINT reservations_catway_number_fkey
		FOREIGN KEY (catway_number) REFERENCES catways (number)
		ON UPDATE CASCADE ON DELETE RESTRICT,
	CONSTRAINT reservations_range_check CHECK (start_date <= end_date),
	CONSTRAINT reservations_no_overlap EXCLUDE USING gist (
		catway_number WITH =,
		tstzrange(start_date, end_date, '[]') WITH &&
	)
);

CREATE INDEX reservations_catway_start_idx
	ON reservations (catway_number, start_date);

CREATE TABLE users (
	id uuid PRIMARY KEY,
	username text NOT NULL CHECK (username <> ''),
	email text NOT NULL,
	password_hash text NOT NULL
);

CREATE UNIQUE INDEX users_email_key ON users (lower(email));
`

const devDataDML = `
INSERT INTO catways (id, number, type, state) VALUES
	('8f5ab0c3-26a4-4e1f-9b8e-0d6a1c5a0001', 1, 'long', 'bon état'),
	('8f5ab0c3-26a4-4e1f-9b8e-0d6a1c5a0002', 2, 'long', 'bon état'),
	('8f5ab0c3-26a4-4e1f-9b8e-0d6a1c5a0003', 3, 'short', 'bon état'),
	('8f5ab0c3-26a4-4e1f-9b8e-0d6a1c5a0004', 4, 'short', 'planche cassée'),
	('8f5ab0c3-26a4-4e1f-9b8e-0d6a1c5a0005', 5, 'short', 'bon état');

INSERT INTO reservations
	(id, catway_number, client_name, boat_name, start_date, end_date)
VALUES
	('0b7e2d61-9c1f-4a8e-8f3a-5e2b7c9d0001', 1, 'Thomas Martin',
		'Carolina', '2024-05-21T06:00:00Z', '2024-10-27T06:00:00Z'),
	('0b7e2d61-9c1f-4a8e-8f3a-5e2b7c9d0002', 2, 'Camille Dubois',
		'Mistral', '2024-07-01T00:00:00Z', '2024-07-05T00:00:00Z'),
	('0b7e2d61-9c1f-4a8e-8f3a-5e2b7c9d0003', 2, 'Lucas Bernard',
		'Le Sillage', '2024-07-06T00:00:00Z', '2024-07-10T00:00:00Z'),
	('0b7e2d61-9c1f-4a8e-8f3a-5e2b7c9d0004', 3, 'Emma Petit',
		'Albatros', '2024-08-01T00:00:00Z', '2024-08-15T00:00:00Z');
`

// InitDevSchema creates major version 1 tables in catweb1 schema and
// fills them with a few sample catways and reservations.
func (sm1 *Settler) InitDevSchema(ctx context.Context) error {
	if err := sm1.createTables(ctx); err != nil {
		return err
	}
	if _, err := sm1.tx.Exec(ctx, devDataDML); err != nil {
		return fmt.Errorf("inserting dev data: %w", err)
	}
	return nil
}

// InitProdSchema creates major version 1 tables in catweb1 schema and
// leaves them empty.
func (sm1 *Settler) InitProdSchema(ctx context.Context) error {
	return sm1.createTables(ctx)
}

func (sm1 *Settler) createTables(ctx context.Context) error {
	if _, err := sm1.tx.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// MajorVersion returns the major semantic version of this Settler
// instance. This value matches with the Major constant which is defined
// in this package. Indeed, this method can be called with a nil
// instance too because it only depends on the Settler type (not its
// instance).
func (sm1 *Settler) MajorVersion() uint {
	return Major
}
