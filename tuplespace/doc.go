// Package tuplespace provides a tag-indexed store where producers post
// payloads under a tag and consumers wait for payloads with a given tag.
//
// Every tag maps to a sequence of payloads in posting order. Take removes the
// oldest payload of a tag and Peek reads it in place; both block until one
// exists.
package tuplespace
