package db

import "embed"

// Migrations はgoose用のSQLマイグレーションです。
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir はMigrations内のディレクトリ名です。
const MigrationsDir = "migrations"
