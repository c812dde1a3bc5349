// Package store defines the persistence contracts for tasks and users: one
// method per storage operation and no business rules. It also holds the
// backend-neutral list filter and the page envelope returned by list
// operations, so that the document and relational backends render the same
// query the same way.
package store
