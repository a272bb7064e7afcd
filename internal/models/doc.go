// Package models defines the data exchanged with the portfolio API and the
// client-side state derived from it.
//
// Documents coming from the API may carry their identity as "_id" or "id";
// decoding normalizes both into the ID field.
package models
