// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc

import (
	"context"

	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/repo"
)

// Settings interface specifies the database related expectations from
// a configuration settings instance. A configuration file keeps the
// connection information of a database, the path of its passwords
// file, and the version of its schema.
type Settings interface {
	// ConnectionPool creates a database connection pool using the
	// connection information of the settings and the password of the
	// `r` role which is read from the passwords file.
	ConnectionPool(ctx context.Context, r repo.Role) (repo.Pool, error)

	// ConnectionInfo returns the database name, host, and port which
	// are kept in the settings.
	ConnectionInfo() (dbName, host string, port int)

	// NewSchemaRepo instantiates a fresh Schema repository which is
	// configured based on the settings (e.g., role names suffix and
	// passwords hashing method).
	NewSchemaRepo() repo.Schema

	// SchemaInitializer creates a repo.SchemaInitializer instance
	// wrapping the tx transaction, so it can create and fill tables
	// of the schema version which is reported by SchemaVersion.
	SchemaInitializer(tx repo.Tx) (repo.SchemaInitializer, error)

	// RenewPasswords generates new secure passwords for the given
	// roles and after recording them in a temporary file, calls the
	// change function in order to update the passwords of those roles
	// in the database too. The change function should perform the
	// update operation in a transaction which may not be committed yet
	// when RenewPasswords returns. After a successful commitment, the
	// returned finalizer should be called in order to move the
	// temporary passwords file over the main passwords file.
	// If the transaction fails, the old passwords file stays valid and
	// the operation may be repeated. If the finalizer call is missed,
	// e.g., due to an abrupt failure, the ConnectionPool method tries
	// the temporary file too.
	RenewPasswords(
		ctx context.Context,
		change func(
			ctx context.Context,
			roles []repo.Role,
			passwords []string,
		) error,
		roles ...repo.Role,
	) (finalizer func() error, err error)

	// SchemaVersion returns the semantic version of the database
	// schema as recorded in the settings.
	SchemaVersion() model.SemVer
}
