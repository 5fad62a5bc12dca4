// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config loads the minibus-soak configuration.
//
// Precedence is environment > file > defaults. Files are YAML and parsed
// strictly: unknown keys and multiple documents are rejected. Every
// environment key is prefixed with MINIBUS_ and mirrors the YAML path, for
// example MINIBUS_LOAD_FAILURE_RATE for load.failure_rate.
package config
