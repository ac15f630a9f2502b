// Package store writes a generated trade database into a self-contained
// SQLite snapshot for tools that prefer SQL over the JSON document.
package store

// snapshotSchema is applied to a fresh database file. Prices is the pivoted
// price table in long form: one row per (item, region) with a known price.
const snapshotSchema = `
CREATE TABLE IF NOT EXISTS metadata (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS regions (
	code    TEXT PRIMARY KEY,
	name    TEXT NOT NULL,
	display TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
	position INTEGER PRIMARY KEY,
	name     TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS cities (
	position     INTEGER PRIMARY KEY,
	name         TEXT NOT NULL UNIQUE,
	culture      TEXT NOT NULL,
	culture_name TEXT NOT NULL,
	lat          INTEGER NOT NULL,
	lng          INTEGER NOT NULL,
	display      TEXT NOT NULL,
	geom         BLOB,
	development  INTEGER NOT NULL,
	military     INTEGER NOT NULL,
	type         TEXT NOT NULL,
	has_tavern   INTEGER NOT NULL,
	has_shipyard INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS city_specialties (
	city      TEXT NOT NULL REFERENCES cities(name),
	position  INTEGER NOT NULL,
	specialty TEXT NOT NULL,
	PRIMARY KEY (city, position)
);

CREATE TABLE IF NOT EXISTS items (
	position INTEGER PRIMARY KEY,
	name     TEXT NOT NULL,
	category TEXT NOT NULL,
	UNIQUE (category, name)
);

CREATE TABLE IF NOT EXISTS prices (
	item   INTEGER NOT NULL REFERENCES items(position),
	region TEXT NOT NULL,
	price  INTEGER NOT NULL,
	PRIMARY KEY (item, region)
);

CREATE INDEX IF NOT EXISTS idx_cities_culture ON cities(culture);
CREATE INDEX IF NOT EXISTS idx_prices_region ON prices(region);
`
