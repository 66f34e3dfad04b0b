// Package similarbooks suggests other books of the same category, then of the same author.
package similarbooks
