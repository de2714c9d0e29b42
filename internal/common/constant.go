package common

// Names of the database objects this module reads or owns.
const (
	// AssetsTable is owned by the primary system; only the trigger is ours.
	AssetsTable = "assets"

	AuditTable    = "assets_delete_audits"
	AuditFunction = "log_assets_delete_audits"
	AuditTrigger  = "trigger_assets_delete_audits"

	// MigrationsTable keeps goose bookkeeping apart from the host schema.
	MigrationsTable = "hasher_db_version"
)
