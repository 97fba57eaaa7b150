// Package project locates a project's .env file and derives the identity its
// key is stored under.
//
// The search walks upward from a starting directory and stops at the project
// boundary (a .git directory), at the user's home directory, or at the
// filesystem root, so an unrelated .env in an ancestor directory is never
// picked up.
//
// The identity is the first 8 bytes of the SHA-256 of the directory string,
// hex encoded. It depends only on the directory, never on file contents, so a
// key survives edits to .env but not a move or rename of the project.
// Different spellings of the same directory (for example with a trailing
// separator) produce different identities.
package project
