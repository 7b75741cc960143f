// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/momeni/catways/pkg/adapter/db/postgres"
	"github.com/momeni/catways/pkg/core/repo"
	"github.com/momeni/catways/pkg/core/scram"
)

// ScramIterations is the number of iterations which are used for
// hashing the database role passwords, as recommended by RFC 7677.
const ScramIterations = 15000

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func literal(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// RoleName returns the actual database role name of role, considering
// the roleSuffix.
func RoleName(roleSuffix, role repo.Role) string {
	return string(role + roleSuffix)
}

func exec[Q postgres.Queryer](
	ctx context.Context, q Q, op, sql string,
) error {
	if _, err := q.Exec(ctx, sql); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DropIfExists drops the `schema` schema with cascading if it exists.
// That is, if `schema` does not exist, a nil error will be returned
// without any change. Otherwise, all of its tables are dropped too.
func DropIfExists[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	return exec(
		ctx, q, "drop schema",
		"DROP SCHEMA IF EXISTS "+ident(schema)+" CASCADE",
	)
}

// CreateSchema tries to create the `schema` schema.
// There must be no other schema with the `schema` name, otherwise,
// this operation will fail.
func CreateSchema[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	return exec(ctx, q, "create schema", "CREATE SCHEMA "+ident(schema))
}

// CreateExtensionIfNotExists installs the `ext` extension in the public
// schema, if it is not installed already.
func CreateExtensionIfNotExists[Q postgres.Queryer](
	ctx context.Context, q Q, ext string,
) error {
	return exec(
		ctx, q, "create extension",
		"CREATE EXTENSION IF NOT EXISTS "+ident(ext)+" SCHEMA public",
	)
}

// CreateRoleIfNotExists creates the `role` role if it does not
// exist right now. Although the login option is enabled for the
// created role, but no specific password will be set for it.
// The ChangePasswords method may be used for setting a password.
//
// The `role` role name is suffixed by `roleSuffix` if it is not empty.
func CreateRoleIfNotExists[Q postgres.Queryer](
	ctx context.Context, q Q, roleSuffix repo.Role, role repo.Role,
) error {
	rn := RoleName(roleSuffix, role)
	return exec(ctx, q, "create role", fmt.Sprintf(`DO $$
BEGIN
	IF NOT EXISTS (SELECT FROM pg_catalog.pg_roles WHERE rolname = %s) THEN
		CREATE ROLE %s LOGIN;
	END IF;
END
$$`, literal(rn), ident(rn)))
}

// GrantPrivileges grants ALL privileges on the `schema` schema
// to the `role` role, so it may create or access tables in that schema
// and run relevant queries.
func GrantPrivileges[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	roleSuffix repo.Role,
	schema string,
	role repo.Role,
) error {
	return exec(ctx, q, "grant", fmt.Sprintf(
		"GRANT ALL ON SCHEMA %s TO %s",
		ident(schema), ident(RoleName(roleSuffix, role)),
	))
}

// SetSearchPath alters the given database role and sets its default
// search_path to the given schema name, followed by the public schema
// which holds the installed extensions.
func SetSearchPath[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	roleSuffix repo.Role,
	schema string,
	role repo.Role,
) error {
	return exec(ctx, q, "set search_path", fmt.Sprintf(
		"ALTER ROLE %s SET search_path TO %s, public",
		ident(RoleName(roleSuffix, role)), ident(schema),
	))
}

// ChangePasswords updates the passwords of the given roles in the
// current transaction. The roles and passwords slices must have the
// same number of entries, so they can be used in pair.
// These fields are not combined as a struct with two role and
// password fields because passing items separately ensures that
// all items are initialized explicitly in constrast to a struct
// which its fields can be zero-initialized and are more suitable
// to pass a set of optional fields.
//
// The `hasher` will be used for hashing of the `passwords` before
// sending them to the DBMS (so they may not leak in plaintext).
// This SCRAM hasher format must conform with the DBMS expected format.
func ChangePasswords(
	ctx context.Context,
	tx *postgres.Tx,
	roleSuffix repo.Role,
	hasher scram.Hasher,
	roles []repo.Role,
	passwords []string,
) error {
	if len(roles) != len(passwords) {
		return fmt.Errorf(
			"got %d roles, but %d passwords", len(roles), len(passwords),
		)
	}
	for i, role := range roles {
		h, err := hasher.Hash(passwords[i], "", ScramIterations)
		if err != nil {
			return fmt.Errorf("hashing password of %q: %w", role, err)
		}
		err = exec(ctx, tx, "alter role", fmt.Sprintf(
			"ALTER ROLE %s PASSWORD %s",
			ident(RoleName(roleSuffix, role)), literal(h),
		))
		if err != nil {
			return fmt.Errorf("role %q: %w", role, err)
		}
	}
	return nil
}
