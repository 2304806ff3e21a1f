// Package mongo provides the MongoDB implementation of store.TaskStore.
//
// Tasks are stored one document per task in a single collection. Document
// ids are ObjectIDs, exposed to callers as 24-character hex strings, and
// listing sorts on _id so results come back in insertion order.
package mongo
