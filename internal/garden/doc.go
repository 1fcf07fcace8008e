// Package garden defines the plant-care data model shared by the store,
// the suggestion engine and the CLI.
//
// A Plant is a snapshot: the caller loads it together with its watering
// logs and care tasks before handing it to the engine. Related records are
// held in a Collection, whose zero value means "not loaded". Consumers that
// only need to know whether there is data use IsEmpty, which treats absent
// and empty the same way.
//
// # Validation
//
// Validate checks a plant at the write boundary (CLI input, document
// import). Readers never validate: a stored plant is evaluated as-is.
//
//	E201  name is required
//	E202  watering frequency must be positive
//	E203  last watered date is in the future
//	E204  planted date is in the future
//	E205  watering log date is in the future
//	E206  care task name is required
package garden
