// Package service implements the business-rule core of the account ledger:
// account lifecycle (create, list, unregister) and balance mutation (use,
// cancel, failure records). Services orchestrate the store interfaces inside
// a single unit of work per operation and raise errors from the closed
// business error set defined in errors.go.
package service
