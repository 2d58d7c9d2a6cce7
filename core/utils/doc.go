// Package utils provides common utility functions for inventory-vault.
// It includes helper functions for type conversion and other shared logic
// that doesn't fit into domain-specific packages. The record normalization
// in core/record builds on these converters.
package utils
