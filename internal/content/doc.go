// Package content manages the admin's records: prompts, categories, tags
// and providers.
//
// The resource set comes from a YAML [Registry]. Every resource is a table
// of [Record]s keyed by a slug identifier that is derived from the record
// name on create and never changes afterwards. [Service] owns that rule and
// the input sanitizing; [Repository] and [MemoryStore] persist records.
package content
