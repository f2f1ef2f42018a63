// Package internal contains the insertion-ordered map shared by the store
// implementations. It is not part of the public API.
package internal
