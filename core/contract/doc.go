// Package contract contains the Contract aggregate, a Document of type contract with
// commercial terms and its own lifecycle status.
package contract
