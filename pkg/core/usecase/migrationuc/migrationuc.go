// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migrationuc provides the database initialization use cases.
// It exposes the InitDBUseCase for creation of an empty catwebN schema
// (for the N schema major version), creation of the database roles,
// renewal of their passwords, and creation of the tables which may be
// filled with development or production suitable data.
// This package also exposes the Settings interface which represents
// the expectations from a configuration file representation type,
// so the use cases layer does not depend on a config file format.
package migrationuc
