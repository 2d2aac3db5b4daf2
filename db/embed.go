// Package db contiene el esquema SQL embebido en el binario.
package db

import _ "embed"

// Schema DDL idempotente de todas las tablas.
//
//go:embed migrations/001_schema.sql
var Schema string
